package be_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	be "pwh_admin/be"
	"pwh_admin/be/biz/config"
	"pwh_admin/be/biz/db/database"
	redisdb "pwh_admin/be/biz/db/redis"
	"pwh_admin/be/biz/model/domain"
	"pwh_admin/be/biz/model/dto"
	"pwh_admin/be/biz/model/errs"
	usersvc "pwh_admin/be/biz/service/user"

	"github.com/alicebob/miniredis/v2"
	"github.com/bytedance/mockey"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/test/assert"
	"github.com/cloudwego/hertz/pkg/common/ut"
)

const testMasterKey = "open-sesame"

var testEngine *server.Hertz

func TestMain(m *testing.M) {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	dir, err := os.MkdirTemp("", "pwh_admin_test_conf_*")
	if err != nil {
		panic(err)
	}
	confPath := filepath.Join(dir, "deploy.yml")
	confStr := `database:
  url: "sqlite:file:e2e?mode=memory&cache=shared"
  auto_migrate: true

redis:
  ip: "` + mr.Host() + `"
  port: ` + mr.Port() + `
  password: ""
  db: 0

gate:
  master_key: "` + testMasterKey + `"
  delete_confirm_seconds: 120

session:
  store_prefix: "admin_session:"
  name: "admin_session_id"
  path: "/"
  max_age: 3600
  http_only: true
  same_site: "Strict"

rate_limit:
  - path: "*"
    window_seconds: 1
    limit: 10000
`
	if err := os.WriteFile(confPath, []byte(confStr), 0600); err != nil {
		panic(err)
	}
	config.Init(confPath)
	redisdb.Init()
	database.Init()

	if err := database.GetDbConn().Exec("INSERT INTO hmhi_cabang (cabang) VALUES ('BANDUNG'), ('SURABAYA'), ('BANDUNG'), (NULL)").Error; err != nil {
		panic(err)
	}

	testEngine = be.NewEngine()
	code := m.Run()
	mr.Close()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestServer(t *testing.T) *server.Hertz {
	t.Helper()
	redisdb.GetRedisClient().FlushAll(context.Background())
	if err := database.GetDbConn().Exec("DELETE FROM users").Error; err != nil {
		t.Fatalf("clean users: %v", err)
	}
	return testEngine
}

func perform(h *server.Hertz, method, url string, body string, headers ...ut.Header) *ut.ResponseRecorder {
	var b *ut.Body
	if body != "" {
		b = &ut.Body{Body: bytes.NewBufferString(body), Len: len(body)}
	}
	allHeaders := append([]ut.Header{{Key: "Content-Type", Value: "application/json"}}, headers...)
	return ut.PerformRequest(h.Engine, method, url, b, allHeaders...)
}

func withCookie(cookie string) ut.Header {
	return ut.Header{Key: "Cookie", Value: cookie}
}

func decodeCommonResp(t *testing.T, respBody []byte) dto.CommonResp {
	t.Helper()
	var r dto.CommonResp
	err := json.Unmarshal(respBody, &r)
	assert.Nil(t, err)
	return r
}

func decodeData(t *testing.T, r dto.CommonResp, out any) {
	t.Helper()
	dataBytes, err := json.Marshal(r.Data)
	assert.Nil(t, err)
	assert.Nil(t, json.Unmarshal(dataBytes, out))
}

// activeSession walks a new session through the gate and returns its cookie.
func activeSession(t *testing.T, h *server.Hertz) string {
	t.Helper()

	w := perform(h, http.MethodPost, "/api/v1/admin/gate/verify", `{"master_key":"`+testMasterKey+`"}`)
	resp := w.Result()
	r := decodeCommonResp(t, resp.Body())
	assert.True(t, r.Success)

	cookie, _, _ := strings.Cut(string(resp.Header.Peek("Set-Cookie")), ";")
	if cookie == "" {
		t.Fatalf("no set-cookie header")
	}

	w = perform(h, http.MethodPost, "/api/v1/admin/gate/enter", "{}", withCookie(cookie))
	r = decodeCommonResp(t, w.Result().Body())
	assert.True(t, r.Success)
	return cookie
}

func TestPing(t *testing.T) {
	h := newTestServer(t)

	w := perform(h, http.MethodGet, "/ping", "")
	resp := w.Result()
	assert.DeepEqual(t, http.StatusOK, resp.StatusCode())
	assert.DeepEqual(t, "pong", string(resp.Body()))
	assert.True(t, len(resp.Header.Peek("X-Log-ID")) > 0)
}

func TestGate_Flow(t *testing.T) {
	h := newTestServer(t)

	w := perform(h, http.MethodGet, "/api/v1/admin/gate", "")
	r := decodeCommonResp(t, w.Result().Body())
	assert.True(t, r.Success)
	var state dto.GateStateResp
	decodeData(t, r, &state)
	assert.DeepEqual(t, string(domain.GateLocked), state.State)

	// user routes stay closed while locked
	w = perform(h, http.MethodGet, "/api/v1/admin/users", "")
	assert.DeepEqual(t, http.StatusUnauthorized, w.Result().StatusCode())
	r = decodeCommonResp(t, w.Result().Body())
	assert.DeepEqual(t, int(errs.GateLocked.Code()), r.Code)

	// enter is refused before verification
	w = perform(h, http.MethodPost, "/api/v1/admin/gate/enter", "{}")
	r = decodeCommonResp(t, w.Result().Body())
	assert.False(t, r.Success)
	assert.DeepEqual(t, int(errs.GateLocked.Code()), r.Code)

	// wrong keys can be retried without lockout
	for i := 0; i < 5; i++ {
		w = perform(h, http.MethodPost, "/api/v1/admin/gate/verify", `{"master_key":"open-sesame "}`)
		r = decodeCommonResp(t, w.Result().Body())
		assert.False(t, r.Success)
		assert.DeepEqual(t, int(errs.MasterKeyIncorrect.Code()), r.Code)
	}

	w = perform(h, http.MethodPost, "/api/v1/admin/gate/verify", `{"master_key":"`+testMasterKey+`"}`)
	resp := w.Result()
	r = decodeCommonResp(t, resp.Body())
	assert.True(t, r.Success)
	decodeData(t, r, &state)
	assert.DeepEqual(t, string(domain.GateVerified), state.State)

	cookie, _, _ := strings.Cut(string(resp.Header.Peek("Set-Cookie")), ";")
	if cookie == "" {
		t.Fatalf("no set-cookie header")
	}

	// verified is not active yet
	w = perform(h, http.MethodGet, "/api/v1/admin/users", "", withCookie(cookie))
	assert.DeepEqual(t, http.StatusUnauthorized, w.Result().StatusCode())

	w = perform(h, http.MethodPost, "/api/v1/admin/gate/enter", "{}", withCookie(cookie))
	r = decodeCommonResp(t, w.Result().Body())
	assert.True(t, r.Success)
	decodeData(t, r, &state)
	assert.DeepEqual(t, string(domain.GateActive), state.State)

	w = perform(h, http.MethodGet, "/api/v1/admin/users", "", withCookie(cookie))
	assert.DeepEqual(t, http.StatusOK, w.Result().StatusCode())

	// verify on an open gate is a no-op
	w = perform(h, http.MethodPost, "/api/v1/admin/gate/verify", `{"master_key":"wrong"}`, withCookie(cookie))
	r = decodeCommonResp(t, w.Result().Body())
	assert.True(t, r.Success)
	decodeData(t, r, &state)
	assert.DeepEqual(t, string(domain.GateActive), state.State)

	// another session starts locked
	w = perform(h, http.MethodGet, "/api/v1/admin/users", "")
	assert.DeepEqual(t, http.StatusUnauthorized, w.Result().StatusCode())
}

func TestListBranches(t *testing.T) {
	h := newTestServer(t)
	cookie := activeSession(t, h)

	w := perform(h, http.MethodGet, "/api/v1/admin/branches", "", withCookie(cookie))
	r := decodeCommonResp(t, w.Result().Body())
	assert.True(t, r.Success)

	var out dto.ListBranchesResp
	decodeData(t, r, &out)
	assert.DeepEqual(t, []string{"", "ALL", "BANDUNG", "SURABAYA"}, out.Branches)
	assert.DeepEqual(t, "", out.Warning)

	w = perform(h, http.MethodGet, "/api/v1/admin/branches?refresh=true", "", withCookie(cookie))
	r = decodeCommonResp(t, w.Result().Body())
	decodeData(t, r, &out)
	assert.DeepEqual(t, []string{"", "ALL", "BANDUNG", "SURABAYA"}, out.Branches)
}

func TestCreateUser_Validation(t *testing.T) {
	h := newTestServer(t)
	cookie := activeSession(t, h)

	long := strings.Repeat("a", 129)
	cases := []struct {
		name string
		body string
		code int32
	}{
		{"long username with mismatch", `{"username":"` + long + `","password":"password1","password_confirm":"password2","branch":"ALL"}`, errs.PasswordMismatch.Code()},
		{"long username", `{"username":"` + long + `","password":"password1","password_confirm":"password1","branch":"ALL"}`, errs.UsernameTooLong.Code()},
		{"missing branch", `{"username":"alice","password":"password1","password_confirm":"password1","branch":""}`, errs.FieldsRequired.Code()},
		{"blank username", `{"username":"   ","password":"password1","password_confirm":"password1","branch":"ALL"}`, errs.FieldsRequired.Code()},
		{"mismatch", `{"username":"alice","password":"password1","password_confirm":"password2","branch":"ALL"}`, errs.PasswordMismatch.Code()},
		{"short", `{"username":"alice","password":"short","password_confirm":"short","branch":"ALL"}`, errs.PasswordTooShort.Code()},
		{"unknown branch", `{"username":"alice","password":"password1","password_confirm":"password1","branch":"MEDAN"}`, errs.BranchInvalid.Code()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := perform(h, http.MethodPost, "/api/v1/admin/users", tc.body, withCookie(cookie))
			resp := w.Result()
			assert.DeepEqual(t, http.StatusOK, resp.StatusCode())
			r := decodeCommonResp(t, resp.Body())
			assert.False(t, r.Success)
			assert.DeepEqual(t, int(tc.code), r.Code)
		})
	}

	w := perform(h, http.MethodPost, "/api/v1/admin/users", "{", withCookie(cookie))
	assert.DeepEqual(t, http.StatusBadRequest, w.Result().StatusCode())
	r := decodeCommonResp(t, w.Result().Body())
	assert.DeepEqual(t, int(errs.ParamError.Code()), r.Code)

	// nothing was stored
	w = perform(h, http.MethodGet, "/api/v1/admin/users", "", withCookie(cookie))
	var list dto.ListUsersResp
	decodeData(t, decodeCommonResp(t, w.Result().Body()), &list)
	assert.DeepEqual(t, 0, list.Total)
}

func TestUserLifecycle(t *testing.T) {
	h := newTestServer(t)
	cookie := activeSession(t, h)

	w := perform(h, http.MethodPost, "/api/v1/admin/users",
		`{"username":"  bob ","password":"password1","password_confirm":"password1","branch":"BANDUNG"}`, withCookie(cookie))
	r := decodeCommonResp(t, w.Result().Body())
	assert.True(t, r.Success)
	var created dto.CreateUserResp
	decodeData(t, r, &created)
	assert.DeepEqual(t, "bob", created.Username)
	assert.DeepEqual(t, "BANDUNG", created.Branch)
	assert.True(t, strings.Contains(created.Message, "bob"))

	w = perform(h, http.MethodPost, "/api/v1/admin/users",
		`{"username":"alice","password":"password1","password_confirm":"password1","branch":"ALL"}`, withCookie(cookie))
	assert.True(t, decodeCommonResp(t, w.Result().Body()).Success)

	// duplicate names the username
	w = perform(h, http.MethodPost, "/api/v1/admin/users",
		`{"username":"alice","password":"password2","password_confirm":"password2","branch":"ALL"}`, withCookie(cookie))
	r = decodeCommonResp(t, w.Result().Body())
	assert.False(t, r.Success)
	assert.DeepEqual(t, int(errs.UserNameDuplicatedErr.Code()), r.Code)
	assert.True(t, strings.Contains(r.Message, "alice"))

	w = perform(h, http.MethodGet, "/api/v1/admin/users", "", withCookie(cookie))
	body := w.Result().Body()
	assert.False(t, bytes.Contains(body, []byte("$2a$")))
	var list dto.ListUsersResp
	decodeData(t, decodeCommonResp(t, body), &list)
	assert.DeepEqual(t, 2, list.Total)
	assert.DeepEqual(t, "alice", list.Users[0].Username)
	assert.DeepEqual(t, "bob", list.Users[1].Username)

	// password update
	w = perform(h, http.MethodPost, "/api/v1/admin/users/alice/password", `{"new_password":"short"}`, withCookie(cookie))
	r = decodeCommonResp(t, w.Result().Body())
	assert.DeepEqual(t, int(errs.PasswordTooShort.Code()), r.Code)

	w = perform(h, http.MethodPost, "/api/v1/admin/users/alice/password", `{"new_password":"new-password"}`, withCookie(cookie))
	assert.True(t, decodeCommonResp(t, w.Result().Body()).Success)

	var match dto.VerifyPasswordResp
	w = perform(h, http.MethodPost, "/api/v1/admin/users/alice/verify", `{"password":"new-password"}`, withCookie(cookie))
	decodeData(t, decodeCommonResp(t, w.Result().Body()), &match)
	assert.True(t, match.Match)
	w = perform(h, http.MethodPost, "/api/v1/admin/users/alice/verify", `{"password":"password1"}`, withCookie(cookie))
	decodeData(t, decodeCommonResp(t, w.Result().Body()), &match)
	assert.False(t, match.Match)

	w = perform(h, http.MethodPost, "/api/v1/admin/users/nobody/password", `{"new_password":"new-password"}`, withCookie(cookie))
	r = decodeCommonResp(t, w.Result().Body())
	assert.DeepEqual(t, int(errs.UserNotExist.Code()), r.Code)

	// first delete only arms the row
	var del dto.DeleteUserResp
	w = perform(h, http.MethodPost, "/api/v1/admin/users/alice/delete", "", withCookie(cookie))
	r = decodeCommonResp(t, w.Result().Body())
	assert.True(t, r.Success)
	decodeData(t, r, &del)
	assert.True(t, del.Armed)
	assert.False(t, del.Deleted)
	assert.True(t, del.Warning != "")

	w = perform(h, http.MethodGet, "/api/v1/admin/users", "", withCookie(cookie))
	decodeData(t, decodeCommonResp(t, w.Result().Body()), &list)
	assert.DeepEqual(t, 2, list.Total)

	// the arm belongs to this session only
	other := activeSession(t, h)
	w = perform(h, http.MethodPost, "/api/v1/admin/users/alice/delete", "", withCookie(other))
	decodeData(t, decodeCommonResp(t, w.Result().Body()), &del)
	assert.True(t, del.Armed)
	assert.False(t, del.Deleted)

	w = perform(h, http.MethodPost, "/api/v1/admin/users/alice/delete", "", withCookie(cookie))
	r = decodeCommonResp(t, w.Result().Body())
	assert.True(t, r.Success)
	decodeData(t, r, &del)
	assert.True(t, del.Deleted)

	w = perform(h, http.MethodGet, "/api/v1/admin/users", "", withCookie(cookie))
	decodeData(t, decodeCommonResp(t, w.Result().Body()), &list)
	assert.DeepEqual(t, 1, list.Total)
	assert.DeepEqual(t, "bob", list.Users[0].Username)

	w = perform(h, http.MethodPost, "/api/v1/admin/users/alice/delete", "", withCookie(cookie))
	r = decodeCommonResp(t, w.Result().Body())
	assert.False(t, r.Success)
	assert.DeepEqual(t, int(errs.UserNotExist.Code()), r.Code)
}

func TestDeleteUser_Cancel(t *testing.T) {
	h := newTestServer(t)
	cookie := activeSession(t, h)

	w := perform(h, http.MethodPost, "/api/v1/admin/users",
		`{"username":"carol","password":"password1","password_confirm":"password1","branch":"ALL"}`, withCookie(cookie))
	assert.True(t, decodeCommonResp(t, w.Result().Body()).Success)

	var del dto.DeleteUserResp
	w = perform(h, http.MethodPost, "/api/v1/admin/users/carol/delete", "", withCookie(cookie))
	decodeData(t, decodeCommonResp(t, w.Result().Body()), &del)
	assert.True(t, del.Armed)

	w = perform(h, http.MethodPost, "/api/v1/admin/users/carol/delete/cancel", "", withCookie(cookie))
	assert.True(t, decodeCommonResp(t, w.Result().Body()).Success)

	// armed again instead of deleted
	w = perform(h, http.MethodPost, "/api/v1/admin/users/carol/delete", "", withCookie(cookie))
	decodeData(t, decodeCommonResp(t, w.Result().Body()), &del)
	assert.True(t, del.Armed)
	assert.False(t, del.Deleted)
}

func TestUserPaths_TrimmedUsername(t *testing.T) {
	h := newTestServer(t)
	cookie := activeSession(t, h)

	w := perform(h, http.MethodPost, "/api/v1/admin/users",
		`{"username":"dave","password":"password1","password_confirm":"password1","branch":"ALL"}`, withCookie(cookie))
	assert.True(t, decodeCommonResp(t, w.Result().Body()).Success)

	var updated dto.UpdatePasswordResp
	w = perform(h, http.MethodPost, "/api/v1/admin/users/%20dave%20/password", `{"new_password":"new-password"}`, withCookie(cookie))
	r := decodeCommonResp(t, w.Result().Body())
	assert.True(t, r.Success)
	decodeData(t, r, &updated)
	assert.DeepEqual(t, "dave", updated.Username)

	var match dto.VerifyPasswordResp
	w = perform(h, http.MethodPost, "/api/v1/admin/users/%20dave%20/verify", `{"password":"new-password"}`, withCookie(cookie))
	decodeData(t, decodeCommonResp(t, w.Result().Body()), &match)
	assert.DeepEqual(t, "dave", match.Username)
	assert.True(t, match.Match)

	var del dto.DeleteUserResp
	w = perform(h, http.MethodPost, "/api/v1/admin/users/%20dave%20/delete", "", withCookie(cookie))
	decodeData(t, decodeCommonResp(t, w.Result().Body()), &del)
	assert.DeepEqual(t, "dave", del.Username)
	assert.True(t, del.Armed)
	assert.True(t, strings.Contains(del.Warning, "'dave'"))

	var cancel dto.CancelDeleteResp
	w = perform(h, http.MethodPost, "/api/v1/admin/users/%20dave%20/delete/cancel", "", withCookie(cookie))
	decodeData(t, decodeCommonResp(t, w.Result().Body()), &cancel)
	assert.DeepEqual(t, "dave", cancel.Username)
}

func TestListUsers_ServerError(t *testing.T) {
	h := newTestServer(t)
	cookie := activeSession(t, h)

	patchCtor := mockey.Mock(usersvc.NewDefault).Return(&usersvc.Service{}).Build()
	defer patchCtor.UnPatch()

	patchList := mockey.Mock((*usersvc.Service).List).
		Return(([]*domain.UserAccount)(nil), errs.ServerError).
		Build()
	defer patchList.UnPatch()

	w := perform(h, http.MethodGet, "/api/v1/admin/users", "", withCookie(cookie))
	resp := w.Result()
	assert.DeepEqual(t, http.StatusOK, resp.StatusCode())

	r := decodeCommonResp(t, resp.Body())
	assert.False(t, r.Success)
	assert.DeepEqual(t, int(errs.ServerError.Code()), r.Code)
}
