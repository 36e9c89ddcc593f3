package routes

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/auth"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	"github.com/BruksfildServices01/salon-booking/internal/db"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/session"
	"github.com/BruksfildServices01/salon-booking/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type server struct {
	t      *testing.T
	router *gin.Engine
	deps   Deps
}

func newServer(t *testing.T, uploader storage.Uploader) *server {
	t.Helper()

	gdb := db.NewTestDB(t)
	cfg := &config.Config{
		Env:        "test",
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	}
	log := zap.NewNop()

	dispatcher := audit.NewDispatcher(audit.New(gdb), log, 100)
	t.Cleanup(dispatcher.Close)

	deps := Deps{
		DB:       gdb,
		Config:   cfg,
		Log:      log,
		Sessions: session.NewMemoryStore(cfg.SessionTTL),
		Audit:    dispatcher,
		Uploader: uploader,
		Hasher:   auth.NewHasherWithCost(4),
	}

	r := gin.New()
	RegisterRoutes(r, deps)
	return &server{t: t, router: r, deps: deps}
}

type call struct {
	method string
	path   string
	body   string
	token  string
	cookie *http.Cookie
	ctype  string
}

func (s *server) do(c call) *httptest.ResponseRecorder {
	var body io.Reader
	if c.body != "" {
		body = strings.NewReader(c.body)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	if c.body != "" {
		ctype := c.ctype
		if ctype == "" {
			ctype = "application/json"
		}
		req.Header.Set("Content-Type", ctype)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type registration struct {
	Message string `json:"message"`
	User    struct {
		ID    uint     `json:"id"`
		Email string   `json:"email"`
		Roles []string `json:"roles"`
	} `json:"user"`
	Salon struct {
		ID      uint   `json:"id"`
		Name    string `json:"name"`
		OwnerID uint   `json:"ownerId"`
	} `json:"salon"`
}

func registerBody(email, salon string) string {
	return fmt.Sprintf(`{"email":%q,"password":"secret123","salonName":%q,"salonAddress":"1 Main St","salonPhoneNumber":"0102030405"}`, email, salon)
}

// register creates an owner with a salon and returns it with a bearer token.
func (s *server) register(email string) (registration, string) {
	t := s.t
	t.Helper()

	w := s.do(call{method: http.MethodPost, path: "/api/register/salon", body: registerBody(email, "Salon "+email)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reg := decode[registration](t, w)

	w = s.do(call{method: http.MethodPost, path: "/login", body: fmt.Sprintf(`{"email":%q,"password":"secret123"}`, email)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decode[struct {
		Token string `json:"token"`
	}](t, w)

	return reg, login.Token
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[struct {
		Error string `json:"error"`
	}](t, w).Error
}

func errorsOf(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	return decode[struct {
		Errors []string `json:"errors"`
	}](t, w).Errors
}

func TestHealth(t *testing.T) {
	s := newServer(t, nil)
	w := s.do(call{method: http.MethodGet, path: "/health"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRegisterSalon_Scenario(t *testing.T) {
	s := newServer(t, nil)

	w := s.do(call{method: http.MethodPost, path: "/api/register/salon", body: registerBody("Owner@Example.com", "Cut & Co")})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	reg := decode[registration](t, w)
	assert.Equal(t, "Salon registered successfully!", reg.Message)
	assert.Equal(t, "owner@example.com", reg.User.Email)
	assert.ElementsMatch(t, []string{models.RoleUser, models.RoleSalonOwner}, reg.User.Roles)
	assert.Equal(t, reg.User.ID, reg.Salon.OwnerID)

	w = s.do(call{method: http.MethodGet, path: fmt.Sprintf("/api/salons/%d", reg.Salon.ID)})
	require.Equal(t, http.StatusOK, w.Code)
	salon := decode[map[string]any](t, w)
	assert.Equal(t, "Cut & Co", salon["name"])
	assert.Equal(t, "0102030405", salon["phoneNumber"])
	assert.Equal(t, "owner@example.com", salon["owner"].(map[string]any)["email"])

	w = s.do(call{method: http.MethodGet, path: "/api/salons"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = s.do(call{method: http.MethodGet, path: "/api/salons/99999"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Salon not found.", errorOf(t, w))

	w = s.do(call{method: http.MethodGet, path: "/api/salons/abc"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterSalon_BadRequests(t *testing.T) {
	s := newServer(t, nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"email":`, "Invalid JSON payload"},
		{"empty body", ``, "Invalid JSON payload"},
		{"missing email first", `{"password":"x","salonName":"S"}`, "Missing required field: email"},
		{"empty password", `{"email":"a@b.com","password":"","salonName":"S","salonAddress":"A"}`, "Missing required field: password"},
		{"missing address", `{"email":"a@b.com","password":"x","salonName":"S"}`, "Missing required field: salonAddress"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(call{method: http.MethodPost, path: "/api/register/salon", body: tt.body, ctype: "application/json"})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, errorOf(t, w))
		})
	}

	w := s.do(call{method: http.MethodPost, path: "/api/register/salon",
		body: `{"email":"not-an-email","password":"x","salonName":"S","salonAddress":"A"}`})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"email: This value is not a valid email address."}, errorsOf(t, w))
}

func TestRegisterSalon_ConcurrentDuplicate(t *testing.T) {
	s := newServer(t, nil)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := s.do(call{method: http.MethodPost, path: "/api/register/salon",
				body: registerBody("race@example.com", fmt.Sprintf("Salon %d", i))})
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, codes)

	w := s.do(call{method: http.MethodGet, path: "/api/salons"})
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = s.do(call{method: http.MethodPost, path: "/api/register/salon", body: registerBody("race@example.com", "Again")})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email: This email is already registered.", errorOf(t, w))
}

func TestLoginMeLogout(t *testing.T) {
	s := newServer(t, nil)
	s.register("owner@example.com")

	w := s.do(call{method: http.MethodGet, path: "/api/me"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	form := url.Values{"_username": {"owner@example.com"}, "_password": {"secret123"}}
	w = s.do(call{method: http.MethodPost, path: "/login", body: form.Encode(), ctype: "application/x-www-form-urlencoded"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	w = s.do(call{method: http.MethodGet, path: "/api/me", cookie: cookie})
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[map[string]any](t, w)
	assert.Equal(t, "owner@example.com", me["email"])
	assert.NotContains(t, me, "password")

	w = s.do(call{method: http.MethodPost, path: "/logout", cookie: cookie})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(call{method: http.MethodGet, path: "/api/me", cookie: cookie})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_RevokesBearerToken(t *testing.T) {
	s := newServer(t, nil)
	_, token := s.register("owner@example.com")

	w := s.do(call{method: http.MethodGet, path: "/api/me", token: token})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(call{method: http.MethodPost, path: "/logout", token: token})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(call{method: http.MethodGet, path: "/api/me", token: token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_Failures(t *testing.T) {
	s := newServer(t, nil)
	s.register("owner@example.com")

	w := s.do(call{method: http.MethodPost, path: "/login", body: `{"email":"owner@example.com","password":"wrong"}`})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials.", errorOf(t, w))

	w = s.do(call{method: http.MethodPost, path: "/login", body: `{"email":"ghost@example.com","password":"x"}`})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(call{method: http.MethodPost, path: "/login", body: `{"email":"owner@example.com"}`})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required field: password", errorOf(t, w))
}

func TestCreateSalon(t *testing.T) {
	s := newServer(t, nil)
	reg, token := s.register("owner@example.com")

	body := `{"name":"Second","address":"2 High St","owner":{"id":999}}`

	w := s.do(call{method: http.MethodPost, path: "/api/salons", body: body})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(call{method: http.MethodPost, path: "/api/salons", body: body, token: token})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	assert.EqualValues(t, reg.User.ID, created["ownerId"])
	assert.Equal(t, "owner@example.com", created["owner"].(map[string]any)["email"])

	w = s.do(call{method: http.MethodPost, path: "/api/salons", body: `{"name":""}`, token: token})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{
		"name: This value should not be blank.",
		"address: This value should not be blank.",
	}, errorsOf(t, w))

	plain := &models.User{Email: "plain@example.com", Password: "x", Roles: []string{models.RoleUser}}
	require.NoError(t, s.deps.DB.Create(plain).Error)
	plainSession, err := s.deps.Sessions.Create(context.Background(), plain.ID)
	require.NoError(t, err)
	plainToken, err := auth.NewTokenManager("test-secret", time.Hour).Generate(plain, plainSession.ID)
	require.NoError(t, err)

	w = s.do(call{method: http.MethodPost, path: "/api/salons", body: body, token: plainToken})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestServices_OwnershipAndLifecycle(t *testing.T) {
	s := newServer(t, nil)
	reg, owner := s.register("owner@example.com")
	_, intruder := s.register("intruder@example.com")

	servicesPath := fmt.Sprintf("/api/salons/%d/services", reg.Salon.ID)

	// forbidden regardless of payload validity
	for _, body := range []string{`{"name":"Cut","price":10,"duration":30}`, `{"price":-5}`, `{`} {
		w := s.do(call{method: http.MethodPost, path: servicesPath, body: body, token: intruder})
		assert.Equal(t, http.StatusForbidden, w.Code, body)
	}

	w := s.do(call{method: http.MethodPost, path: servicesPath, body: `{"name":"Cut"}`})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(call{method: http.MethodPost, path: "/api/salons/99999/services", body: `{}`, token: owner})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(call{method: http.MethodPost, path: servicesPath, body: `{"name":"","price":-0.01,"duration":0}`, token: owner})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{
		"name: This value should not be blank.",
		"price: This value should be either positive or zero.",
		"duration: This value should be positive.",
	}, errorsOf(t, w))

	for _, price := range []string{`-0.004`, `"-0.004"`} {
		w = s.do(call{method: http.MethodPost, path: servicesPath, body: `{"name":"Cut","price":` + price + `,"duration":30}`, token: owner})
		assert.Equal(t, http.StatusBadRequest, w.Code, price)
		assert.Equal(t, []string{"price: This value should be either positive or zero."}, errorsOf(t, w))
	}

	w = s.do(call{method: http.MethodPost, path: servicesPath, body: `{"name":"` + strings.Repeat("n", 256) + `","price":1,"duration":30}`, token: owner})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"name: This value is too long. It should have 255 characters or less."}, errorsOf(t, w))

	w = s.do(call{method: http.MethodPost, path: servicesPath, body: `{"name":"Cut","price":"25","duration":30}`, token: owner})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	assert.Equal(t, "25.00", created["price"])
	assert.EqualValues(t, reg.Salon.ID, created["salon"].(map[string]any)["id"])
	servicePath := fmt.Sprintf("/api/services/%v", created["id"])

	w = s.do(call{method: http.MethodGet, path: servicesPath})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = s.do(call{method: http.MethodPut, path: servicePath, body: `{"duration":45}`, token: intruder})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(call{method: http.MethodPut, path: servicePath, body: `{"duration":45,"price":0}`, token: owner})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[map[string]any](t, w)
	assert.EqualValues(t, 45, updated["duration"])
	assert.Equal(t, "0.00", updated["price"])
	assert.Equal(t, "Cut", updated["name"])

	w = s.do(call{method: http.MethodGet, path: servicePath})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(call{method: http.MethodDelete, path: servicePath, token: intruder})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(call{method: http.MethodDelete, path: servicePath, token: owner})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = s.do(call{method: http.MethodDelete, path: servicePath, token: owner})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(call{method: http.MethodGet, path: "/api/salons/99999/services"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuditLogs(t *testing.T) {
	s := newServer(t, nil)
	reg, token := s.register("owner@example.com")

	w := s.do(call{method: http.MethodPost, path: fmt.Sprintf("/api/salons/%d/services", reg.Salon.ID),
		body: `{"name":"Cut","price":10,"duration":30}`, token: token})
	require.Equal(t, http.StatusCreated, w.Code)

	require.Eventually(t, func() bool {
		w := s.do(call{method: http.MethodGet, path: "/api/me/audit-logs", token: token})
		return w.Code == http.StatusOK && len(decode[[]map[string]any](t, w)) == 3
	}, 2*time.Second, 20*time.Millisecond)

	w = s.do(call{method: http.MethodGet, path: "/api/me/audit-logs?entity=service", token: token})
	logs := decode[[]map[string]any](t, w)
	require.Len(t, logs, 1)
	assert.Equal(t, "service_created", logs[0]["action"])

	w = s.do(call{method: http.MethodGet, path: "/api/me/audit-logs"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type memUploader struct{ keys []string }

func (m *memUploader) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, body)
	m.keys = append(m.keys, key)
	return "https://cdn.example/" + key, nil
}

func multipartImage(t *testing.T) (string, string) {
	t.Helper()
	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 16, 16))))
	return multipartFile(t, img.Bytes())
}

func multipartFile(t *testing.T, data []byte) (string, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "salon.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body.String(), mw.FormDataContentType()
}

func TestUploadSalonImage(t *testing.T) {
	up := &memUploader{}
	s := newServer(t, up)
	reg, owner := s.register("owner@example.com")
	_, intruder := s.register("intruder@example.com")
	path := fmt.Sprintf("/api/salons/%d/image", reg.Salon.ID)

	body, ctype := multipartImage(t)

	w := s.do(call{method: http.MethodPut, path: path, body: body, ctype: ctype, token: intruder})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(call{method: http.MethodPut, path: path, body: `{}`, token: owner})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required field: image", errorOf(t, w))

	w = s.do(call{method: http.MethodPut, path: path, body: body, ctype: ctype, token: owner})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, up.keys, 1)
	assert.Equal(t, "https://cdn.example/"+up.keys[0], decode[map[string]any](t, w)["imageUrl"])
}

// hugePNGHeader declares a 12000x12000 grayscale PNG without any pixel data.
func hugePNGHeader() []byte {
	ihdr := make([]byte, 17)
	copy(ihdr, "IHDR")
	binary.BigEndian.PutUint32(ihdr[4:], 12000)
	binary.BigEndian.PutUint32(ihdr[8:], 12000)
	ihdr[12] = 8

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(13))
	buf.Write(ihdr)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(ihdr))
	return buf.Bytes()
}

func TestUploadSalonImage_RejectsHugeDimensions(t *testing.T) {
	up := &memUploader{}
	s := newServer(t, up)
	reg, owner := s.register("owner@example.com")

	body, ctype := multipartFile(t, hugePNGHeader())
	w := s.do(call{method: http.MethodPut, path: fmt.Sprintf("/api/salons/%d/image", reg.Salon.ID),
		body: body, ctype: ctype, token: owner})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"image: This file is not a valid image."}, errorsOf(t, w))
	assert.Empty(t, up.keys)
}

func TestUploadSalonImage_StorageDisabled(t *testing.T) {
	s := newServer(t, nil)
	reg, owner := s.register("owner@example.com")

	body, ctype := multipartImage(t)
	w := s.do(call{method: http.MethodPut, path: fmt.Sprintf("/api/salons/%d/image", reg.Salon.ID),
		body: body, ctype: ctype, token: owner})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "image storage is not configured", errorOf(t, w))
}
