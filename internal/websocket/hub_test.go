package websocket

import (
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"studytrack-backend/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userID})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func TestAuthenticate(t *testing.T) {
	h := NewHub(nil, testSecret)
	userID := uuid.New()

	tests := []struct {
		name   string
		token  string
		wantOK bool
	}{
		{"valid token", signToken(t, userID.String()), true},
		{"missing token", "", false},
		{"garbage token", "not-a-jwt", false},
		{"bad user id claim", signToken(t, "not-a-uuid"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/ws?token="+tc.token, nil)

			got, ok := h.authenticate(req)
			if ok != tc.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tc.wantOK, ok)
			}
			if ok && got != userID {
				t.Errorf("Expected user %s, got %s", userID, got)
			}
		})
	}
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	h := NewHub(nil, "other-secret")

	req := httptest.NewRequest("GET", "/api/v1/ws?token="+signToken(t, uuid.New().String()), nil)
	if _, ok := h.authenticate(req); ok {
		t.Error("Expected token signed with a different secret to be rejected")
	}
}

func TestSendToUser_NoConnections(t *testing.T) {
	h := NewHub(nil, testSecret)

	// A user with no open sockets is a no-op, not a panic
	h.SendToUser(uuid.New(), models.WSMessage{Type: "connected"})

	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.connections) != 0 {
		t.Errorf("Expected no tracked connections, got %d", len(h.connections))
	}
}
