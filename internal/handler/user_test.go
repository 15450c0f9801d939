package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Vista_Video/internal/middleware"
	"Vista_Video/internal/model"
	"Vista_Video/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRouter(svc service.UserService, userID uint64) *gin.Engine {
	h := NewUserHandler(svc, time.Hour)
	r := gin.New()
	r.POST("/users/register", h.Register)
	r.POST("/users/login", h.Login)
	r.GET("/users/profile", withIdentity(userID, ""), h.GetProfile)
	return r
}

func jsonPost(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	svc := &mockUserService{}
	svc.On("Register", "alice", "pw").Return(&model.User{BaseModel: model.BaseModel{ID: 1}, Username: "alice"}, nil).Once()
	svc.On("Register", "bob", "pw").Return(nil, service.ErrUserExists).Once()
	r := newUserRouter(svc, 0)

	w := perform(t, r, jsonPost("/users/register", `{"username":"alice","password":"pw"}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)

	w = perform(t, r, jsonPost("/users/register", `{"username":"bob","password":"pw"}`))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = perform(t, r, jsonPost("/users/register", `{"username":"carol"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"errors":"password: This field is required."}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	svc := &mockUserService{}
	svc.On("Login", "alice", "pw").Return("signed-token", nil).Once()
	svc.On("Login", "alice", "bad").Return("", service.ErrBadLogin).Once()
	svc.On("Login", "alice", "boom").Return("", errors.New("db down")).Once()
	r := newUserRouter(svc, 0)

	w := perform(t, r, jsonPost("/users/login", `{"username":"alice","password":"pw"}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"signed-token"`)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.TokenCookie, cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)

	w = perform(t, r, jsonPost("/users/login", `{"username":"alice","password":"bad"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())

	w = perform(t, r, jsonPost("/users/login", `{"username":"alice","password":"boom"}`))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	svc.AssertExpectations(t)
}

func TestGetProfile(t *testing.T) {
	w := perform(t, newUserRouter(&mockUserService{}, 5), httptest.NewRequest(http.MethodGet, "/users/profile", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":5`)

	w = perform(t, newUserRouter(&mockUserService{}, 0), httptest.NewRequest(http.MethodGet, "/users/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFormFieldName(t *testing.T) {
	assert.Equal(t, "video_file", formFieldName("VideoFile"))
	assert.Equal(t, "title", formFieldName("Title"))
	assert.Equal(t, "thumbnail_data", formFieldName("ThumbnailData"))
}
