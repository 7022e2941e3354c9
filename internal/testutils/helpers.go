package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// UploadField is the multipart field carrying the image
const UploadField = "photo"

// CreateMultipartFormData builds an upload body. An empty filename omits the
// file part entirely.
func CreateMultipartFormData(filename string, data []byte, fields map[string]string) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if filename != "" {
		fileWriter, err := writer.CreateFormFile(UploadField, filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := fileWriter.Write(data); err != nil {
			return nil, "", err
		}
	}

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// NewUploadRequest returns a POST to target with a multipart upload body
func NewUploadRequest(t testing.TB, target, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	body, contentType, err := CreateMultipartFormData(filename, data, fields)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	return req
}

// MakeJSONRequest creates an HTTP test request with a JSON body
func MakeJSONRequest(t testing.TB, method, target string, payload interface{}) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DecodeJSON asserts a JSON response and decodes it into target
func DecodeJSON(t testing.TB, resp *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.True(t, strings.Contains(resp.Header().Get("Content-Type"), "application/json"),
		"expected JSON response, got %q", resp.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), target), resp.Body.String())
}
