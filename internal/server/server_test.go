package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-extractor/internal/config"
	"github.com/jonathan/resume-extractor/internal/db"
	"github.com/jonathan/resume-extractor/internal/fallback"
	"github.com/jonathan/resume-extractor/internal/pipeline"
	"github.com/jonathan/resume-extractor/internal/types"
)

// stubCandidates serves a fixed candidate map.
type stubCandidates struct {
	byID map[uuid.UUID]*db.Candidate
}

func (s *stubCandidates) GetCandidateByID(_ context.Context, id uuid.UUID) (*db.Candidate, error) {
	return s.byID[id], nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	passwords := &config.PasswordConfig{BcryptCost: 10}
	hash, err := passwords.HashPassword("admin-secret")
	require.NoError(t, err)
	passwords.AdminHash = hash

	return &Server{
		candidates: &stubCandidates{byID: map[uuid.UUID]*db.Candidate{}},
		processor: &pipeline.Processor{
			Fallback: fallback.NewExtractor(nil),
		},
		jwtService: NewJWTService(&config.JWTConfig{
			Secret:          "test-secret",
			Issuer:          "resume-extractor",
			ExpirationHours: 1,
		}),
		passwords: passwords,
	}
}

func buildDOCX(t *testing.T, lines ...string) []byte {
	t.Helper()

	var doc bytes.Buffer
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, line := range lines {
		fmt.Fprintf(&doc, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, line)
	}
	doc.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write(doc.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func multipartUpload(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func bearerToken(t *testing.T, s *Server) string {
	t.Helper()
	token, err := s.jwtService.GenerateToken("admin")
	require.NoError(t, err)
	return token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuthToken_ValidPassword(t *testing.T) {
	s := newTestServer(t)
	body := bytes.NewBufferString(`{"password":"admin-secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/token", body)
	rec := httptest.NewRecorder()

	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 1, resp.ExpiresIn)

	// The issued token must validate.
	_, err := s.jwtService.ValidateToken(resp.Token)
	assert.NoError(t, err)
}

func TestAuthToken_WrongPassword(t *testing.T) {
	s := newTestServer(t)
	body := bytes.NewBufferString(`{"password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/token", body)
	rec := httptest.NewRecorder()

	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExtract_RequiresAuth(t *testing.T) {
	s := newTestServer(t)
	body, contentType := multipartUpload(t, "resume.docx", buildDOCX(t, "Jane Roe"))
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExtract_ProcessesUpload(t *testing.T) {
	s := newTestServer(t)
	data := buildDOCX(t, "Jane Roe", "Software Engineer", "jane@example.com")
	body, contentType := multipartUpload(t, "jane.docx", data)

	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, s))
	rec := httptest.NewRecorder()

	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result types.ExtractionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "jane.docx", result.Filename)
	require.NotNil(t, result.Profile)
	assert.Equal(t, "Jane Roe", result.Profile.Name)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	s := newTestServer(t)
	body, contentType := multipartUpload(t, "resume.txt", []byte("plain text"))

	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, s))
	rec := httptest.NewRecorder()

	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestGetCandidate_NotFound(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/candidates/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, s))
	rec := httptest.NewRecorder()

	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCandidate_Found(t *testing.T) {
	s := newTestServer(t)
	id := uuid.New()
	s.candidates.(*stubCandidates).byID[id] = &db.Candidate{
		ID:    id,
		Name:  "Jane Roe",
		Email: "jane@example.com",
	}

	req := httptest.NewRequest(http.MethodGet, "/candidates/"+id.String(), nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, s))
	rec := httptest.NewRecorder()

	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var candidate db.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &candidate))
	assert.Equal(t, "Jane Roe", candidate.Name)
}

func TestGetCandidate_InvalidID(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/candidates/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, s))
	rec := httptest.NewRecorder()

	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
