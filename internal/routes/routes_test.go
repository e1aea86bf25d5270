package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/auth"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/config"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/storage"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	students := storage.NewStudentStore(filepath.Join(dir, "students.json"))
	credentials := auth.NewCredentialStore(filepath.Join(dir, "admin.json"), "admin", "1234", 1000)
	tokens := auth.NewTokenStore(filepath.Join(dir, "tokens.json"))
	require.NoError(t, credentials.EnsureInitialized())
	require.NoError(t, tokens.EnsureInitialized())

	r := gin.New()
	Register(r, &config.Config{TokenTTLSeconds: "3600"}, students, credentials, tokens)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}

func TestLogin(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "admin", "password": "1234"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "Bearer", body["token_type"])
	assert.EqualValues(t, 3600, body["expires_in"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/students", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/students", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStudentAndGradeFlow(t *testing.T) {
	r := setupServer(t)
	token := login(t, r, "admin", "1234")

	w := doJSON(t, r, http.MethodPost, "/api/v1/students", token, gin.H{
		"name": "Ana", "id_type": "NATIONAL_ID", "identifier": "123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	student := decode(t, w)
	studentID := student["id"].(string)
	assert.Equal(t, "Ana", student["name"])

	// Duplicate (id_type, identifier) pair.
	w = doJSON(t, r, http.MethodPost, "/api/v1/students", token, gin.H{
		"name": "Ana Clone", "id_type": "NATIONAL_ID", "identifier": "123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// id_type outside the enum fails binding.
	w = doJSON(t, r, http.MethodPost, "/api/v1/students", token, gin.H{
		"name": "Bob", "id_type": "PASSPORT", "identifier": "999",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/students/"+studentID+"/subjects", token, gin.H{"name": "Math"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	subject := decode(t, w)
	subjectID := subject["id"].(string)
	assert.Equal(t, "IN_PROGRESS", subject["status"])
	assert.Nil(t, subject["average"])

	gradeURL := "/api/v1/students/" + studentID + "/subjects/" + subjectID + "/grade"
	for stage, grade := range map[string]float64{"STAGE_1": 6, "STAGE_2": 7} {
		w = doJSON(t, r, http.MethodPut, gradeURL, token, gin.H{"stage": stage, "grade": grade})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPut, gradeURL, token, gin.H{"stage": "STAGE_3", "grade": 8})
	require.Equal(t, http.StatusOK, w.Code)
	graded := decode(t, w)
	assert.Equal(t, "APPROVED", graded["status"])
	assert.InDelta(t, 7.1, graded["average"].(float64), 1e-9)

	w = doJSON(t, r, http.MethodPut, gradeURL, token, gin.H{"stage": "STAGE_4", "grade": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(t, r, http.MethodPut, gradeURL, token, gin.H{"stage": "STAGE_1", "grade": 10.5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/students/"+studentID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decode(t, w)
	subjects := fetched["subjects"].([]any)
	require.Len(t, subjects, 1)

	w = doJSON(t, r, http.MethodGet, "/api/v1/students?name=ana&id_type=NATIONAL_ID", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decode(t, w)
	assert.Len(t, listed["data"].([]any), 1)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/students/"+studentID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/v1/students/"+studentID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStudentPartialPatch(t *testing.T) {
	r := setupServer(t)
	token := login(t, r, "admin", "1234")

	w := doJSON(t, r, http.MethodPost, "/api/v1/students", token, gin.H{
		"name": "Ana", "id_type": "NATIONAL_ID", "identifier": "123", "registration_date": "2024-03-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	studentID := decode(t, w)["id"].(string)

	// Absent fields stay untouched.
	w = doJSON(t, r, http.MethodPut, "/api/v1/students/"+studentID, token, gin.H{"name": "Ana Maria"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)
	assert.Equal(t, "Ana Maria", updated["name"])
	assert.Equal(t, "123", updated["identifier"])
	assert.Equal(t, "2024-03-01", updated["registration_date"])

	// An explicit empty value is rejected rather than ignored.
	w = doJSON(t, r, http.MethodPut, "/api/v1/students/"+studentID, token, gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangePasswordFlow(t *testing.T) {
	r := setupServer(t)
	token := login(t, r, "admin", "1234")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/change-password", token, gin.H{
		"old_password": "1234", "new_password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "new password below minimum length")

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/change-password", token, gin.H{
		"old_password": "nope", "new_password": "abcd",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/change-password", token, gin.H{
		"old_password": "1234", "new_password": "abcd",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "admin", "password": "1234"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	login(t, r, "admin", "abcd")
}

func TestLogoutRevokesToken(t *testing.T) {
	r := setupServer(t)
	token := login(t, r, "admin", "1234")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/students", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
