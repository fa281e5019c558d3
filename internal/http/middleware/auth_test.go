package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/platform/authtoken"
	"github.com/yungbote/blog-backend/internal/platform/ctxutil"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

func authRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewAuthMiddleware(logger.Nop(), verifier).RequireAuth())
	r.GET("/me", func(c *gin.Context) {
		ad := ctxutil.GetAuthData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"id": ad.UserID, "username": ad.Username})
	})
	return r
}

func doAuth(r *gin.Engine, token string, ui *UserInfo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: CookieToken, Value: token})
	}
	if ui != nil {
		req.AddCookie(&http.Cookie{Name: CookieUserInfo, Value: EncodeUserInfo(*ui)})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthCookies(t *testing.T) {
	r := authRouter(nil)
	ui := &UserInfo{ID: "u1", Username: "lin"}

	if rec := doAuth(r, "", ui); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: code=%d", rec.Code)
	}
	if rec := doAuth(r, "tok", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing userInfo: code=%d", rec.Code)
	}
	rec := doAuth(r, "tok", ui)
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRequireAuthVerifiesJWT(t *testing.T) {
	iss, err := authtoken.NewIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	r := authRouter(iss)
	id := uuid.New()
	tok, _ := iss.Issue(id, "lin")

	if rec := doAuth(r, tok, &UserInfo{ID: id.String(), Username: "lin"}); rec.Code != http.StatusOK {
		t.Fatalf("valid token: code=%d", rec.Code)
	}
	if rec := doAuth(r, tok, &UserInfo{ID: uuid.NewString(), Username: "lin"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("mismatched user: code=%d", rec.Code)
	}
	if rec := doAuth(r, "forged", &UserInfo{ID: id.String()}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("forged token: code=%d", rec.Code)
	}
}

func TestUserInfoCookieRoundTrip(t *testing.T) {
	in := UserInfo{ID: "42", Username: "林 青"}
	out, err := DecodeUserInfo(EncodeUserInfo(in))
	if err != nil || out != in {
		t.Fatalf("round trip=%+v err=%v", out, err)
	}
	if _, err := DecodeUserInfo(`{"id":"7","username":"raw"}`); err != nil {
		t.Fatalf("unescaped cookie: %v", err)
	}
}
