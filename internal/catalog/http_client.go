package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

// maxErrorBodyBytes caps how much of an error payload is carried into an
// APIError.
const maxErrorBodyBytes = 4 * 1024

// httpClient implements Client over the backend's REST API.
type httpClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewHTTPClient creates a catalogue client for the backend at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration, logger zerolog.Logger) Client {
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "catalog-client").Logger(),
	}
}

// List retrieves the full product list.
func (c *httpClient) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.getJSON(ctx, "/api/products", &products); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(products)).Msg("retrieved products")
	return products, nil
}

// ListByCategory retrieves products in the given category. The backend
// has no category parameter, so the filter is applied client-side.
func (c *httpClient) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	products, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return products, nil
	}

	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}

	c.logger.Debug().
		Str("category", category).
		Int("count", len(filtered)).
		Msg("filtered products by category")
	return filtered, nil
}

// Search retrieves products matching a keyword.
func (c *httpClient) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	path := "/api/products/search?keyword=" + url.QueryEscape(keyword)

	var products []model.Product
	if err := c.getJSON(ctx, path, &products); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("keyword", keyword).
		Int("count", len(products)).
		Msg("search completed")
	return products, nil
}

// Get retrieves a single product by its identifier.
func (c *httpClient) Get(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrProductNotFound
	}

	var product model.Product
	if err := c.getJSON(ctx, "/api/product/"+url.PathEscape(id), &product); err != nil {
		if apiErr, ok := asAPIError(err); ok && apiErr.NotFound() {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// GetImage retrieves the product's image bytes and content type.
func (c *httpClient) GetImage(ctx context.Context, id string) ([]byte, string, error) {
	if id == "" {
		return nil, "", model.ErrProductNotFound
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/api/product/"+url.PathEscape(id)+"/image", nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("product_id", id).Msg("image request failed")
		return nil, "", fmt.Errorf("failed to fetch product image: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		if apiErr, ok := asAPIError(err); ok && apiErr.NotFound() {
			return nil, "", model.ErrProductNotFound
		}
		return nil, "", err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read product image: %w", err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// Create adds a new product with its image.
func (c *httpClient) Create(ctx context.Context, product model.Product, image Image) (*model.Product, error) {
	return c.upload(ctx, http.MethodPost, "/api/product", product, image)
}

// Update replaces an existing product and its image.
func (c *httpClient) Update(ctx context.Context, id string, product model.Product, image Image) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrProductNotFound
	}
	return c.upload(ctx, http.MethodPut, "/api/product/"+url.PathEscape(id), product, image)
}

// DeleteProduct removes a product from the catalogue.
func (c *httpClient) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return model.ErrProductNotFound
	}

	req, err := c.newRequest(ctx, http.MethodDelete, "/api/product/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("product_id", id).Msg("delete request failed")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		if apiErr, ok := asAPIError(err); ok && apiErr.NotFound() {
			return model.ErrProductNotFound
		}
		return err
	}

	c.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// upload sends a multipart request with a JSON "product" part and an
// "imageFile" part, matching the backend's contract.
func (c *httpClient) upload(ctx context.Context, method, path string, product model.Product, image Image) (*model.Product, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	productJSON, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="product"`)
	header.Set("Content-Type", "application/json")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart request: %w", err)
	}
	if _, err := part.Write(productJSON); err != nil {
		return nil, fmt.Errorf("failed to build multipart request: %w", err)
	}

	filename := image.Filename
	if filename == "" {
		filename = "image"
	}
	imagePart, err := writer.CreateFormFile("imageFile", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart request: %w", err)
	}
	if _, err := imagePart.Write(image.Data); err != nil {
		return nil, fmt.Errorf("failed to build multipart request: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart request: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("upload request failed")
		return nil, fmt.Errorf("failed to upload product: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var saved model.Product
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return nil, fmt.Errorf("failed to decode product response: %w", err)
	}

	c.logger.Info().Str("product_id", saved.ID).Str("path", path).Msg("product saved")
	return &saved, nil
}

// getJSON performs a GET and decodes the JSON response into out.
func (c *httpClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("request failed")
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		c.logger.Warn().Str("path", path).Err(err).Msg("backend returned error status")
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("failed to decode response")
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func (c *httpClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// checkStatus converts a non-2xx response into an *model.APIError.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return &model.APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

func asAPIError(err error) (*model.APIError, bool) {
	var apiErr *model.APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
