package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// call describes a single backend request.
type call struct {
	method string
	path   string
	query  url.Values

	// body is JSON-marshalled when non-nil. Mutually exclusive with upload.
	body any

	// upload switches the request to multipart/form-data. Content-Type is
	// taken from the multipart writer so the boundary is set correctly.
	upload *upload

	// suppressUnauthorized keeps a 401/403 from invoking the registered
	// handler. Refresh and logout set it to avoid forced-logout loops.
	suppressUnauthorized bool
}

type upload struct {
	field    string
	filename string
	reader   io.Reader
	fields   map[string]string
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// do executes the call and decodes a JSON response into out (which may be
// nil for calls whose response body is irrelevant).
func (c *Client) do(ctx context.Context, cl call, out any) error {
	body, err := c.send(ctx, cl)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// doRaw executes the call and returns the raw response body. Used for
// binary downloads (PDFs, receipt images); credential attachment and error
// classification are identical to JSON calls.
func (c *Client) doRaw(ctx context.Context, cl call) ([]byte, error) {
	return c.send(ctx, cl)
}

func (c *Client) send(ctx context.Context, cl call) ([]byte, error) {
	var (
		reqBody     io.Reader
		contentType string
	)

	switch {
	case cl.upload != nil:
		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		for name, value := range cl.upload.fields {
			if err := mw.WriteField(name, value); err != nil {
				return nil, fmt.Errorf("failed to build form: %w", err)
			}
		}
		part, err := mw.CreateFormFile(cl.upload.field, cl.upload.filename)
		if err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
		if _, err := io.Copy(part, cl.upload.reader); err != nil {
			return nil, fmt.Errorf("failed to read upload: %w", err)
		}
		if err := mw.Close(); err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
		reqBody = buf
		contentType = mw.FormDataContentType()
	case cl.body != nil:
		data, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
		contentType = "application/json"
	default:
		contentType = "application/json"
	}

	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, reqBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("X-Request-Id", uuid.NewString())

	token, err := c.AccessToken(ctx)
	if err != nil {
		// Hydration failure must not kill the call: proceed unauthenticated,
		// the backend will answer 401 if the endpoint needs a token.
		c.log.Warn(ctx, "failed to load access token", "error", err)
		token = ""
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusResetContent {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.classify(ctx, resp.StatusCode, data, cl.suppressUnauthorized)
	}

	return data, nil
}

// classify turns a non-2xx response into *Error and escalates 401/403 to
// the registered unauthorized handler unless the call suppressed it.
func (c *Client) classify(ctx context.Context, status int, body []byte, suppress bool) error {
	message := fmt.Sprintf("HTTP %d", status)
	if len(body) > 0 {
		var eb errorBody
		// A malformed body degrades to the status-derived message.
		if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
			message = eb.Error
		}
	}

	apiErr := &Error{Status: status, Message: message}

	if apiErr.Unauthorized() && !suppress {
		if fn := c.unauthorizedHandler(); fn != nil {
			fn(message)
		}
	}

	return apiErr
}
