package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gctplacement/placetrack-backend/internal/config"
	"github.com/gctplacement/placetrack-backend/internal/otp"
	"github.com/gctplacement/placetrack-backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testMailer() *utils.Mailer {
	// No SMTP settings: sends fail and get logged, which is the local dev path.
	return utils.NewMailer(&config.Config{})
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendOTPRejectsForeignDomain(t *testing.T) {
	store := otp.NewMemoryStore("gct.ac.in", time.Minute)
	r := gin.New()
	r.POST("/send-otp", SendOTP(store, nil, testMailer()))

	w := postJSON(r, "/send-otp", `{"email":"bob@gmail.com"}`)

	if w.Code != 400 {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["isGCTEmail"] != false {
		t.Errorf("isGCTEmail = %v, want false", resp["isGCTEmail"])
	}
}

func TestSendOTPSucceedsForInstitutionalEmail(t *testing.T) {
	store := otp.NewMemoryStore("gct.ac.in", time.Minute)
	r := gin.New()
	r.POST("/send-otp", SendOTP(store, nil, testMailer()))

	w := postJSON(r, "/send-otp", `{"email":"alice@gct.ac.in"}`)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200 even without SMTP configured", w.Code)
	}
}

func TestSendOTPRespectsRateLimit(t *testing.T) {
	store := otp.NewMemoryStore("gct.ac.in", time.Minute)
	limiter := otp.NewMemoryLimiter(time.Minute, 1)
	r := gin.New()
	r.POST("/send-otp", SendOTP(store, limiter, testMailer()))

	if w := postJSON(r, "/send-otp", `{"email":"alice@gct.ac.in"}`); w.Code != 200 {
		t.Fatalf("first request: status = %d, want 200", w.Code)
	}
	if w := postJSON(r, "/send-otp", `{"email":"alice@gct.ac.in"}`); w.Code != 429 {
		t.Errorf("second request: status = %d, want 429", w.Code)
	}
}

func TestVerifyOTPConsumesCode(t *testing.T) {
	store := otp.NewMemoryStore("gct.ac.in", time.Minute)
	code, err := store.Issue("alice@gct.ac.in")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	r := gin.New()
	r.POST("/verify-otp", VerifyOTP(store))

	body := fmt.Sprintf(`{"email":"alice@gct.ac.in","otp":%q}`, code)
	if w := postJSON(r, "/verify-otp", body); w.Code != 200 {
		t.Fatalf("first verify: status = %d, want 200", w.Code)
	}
	if w := postJSON(r, "/verify-otp", body); w.Code != 400 {
		t.Errorf("second verify: status = %d, want 400 after consumption", w.Code)
	}
}

func TestVerifyOTPRejectsWrongCode(t *testing.T) {
	store := otp.NewMemoryStore("gct.ac.in", time.Minute)
	if _, err := store.Issue("alice@gct.ac.in"); err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	r := gin.New()
	r.POST("/verify-otp", VerifyOTP(store))

	w := postJSON(r, "/verify-otp", `{"email":"alice@gct.ac.in","otp":"000000"}`)
	if w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCheckGCTEmail(t *testing.T) {
	r := gin.New()
	r.GET("/check-gct-email", CheckGCTEmail("gct.ac.in"))

	cases := []struct {
		email string
		want  bool
	}{
		{"alice@gct.ac.in", true},
		{"bob@gmail.com", false},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/check-gct-email?email="+tc.email, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != 200 {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		var resp map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
		if resp["isGCTEmail"] != tc.want {
			t.Errorf("isGCTEmail for %q = %v, want %v", tc.email, resp["isGCTEmail"], tc.want)
		}
	}
}
