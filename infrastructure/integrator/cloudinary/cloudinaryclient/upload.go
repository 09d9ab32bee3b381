package cloudinaryclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	cloudinarydomain "github.com/vfg2006/catalog-manager-api/infrastructure/integrator/cloudinary/domain"
)

// Upload envia um arquivo para {API_URL}/{cloud}/{resource_type}/upload usando o upload preset
func (c *CloudinaryClient) Upload(ctx context.Context, params cloudinarydomain.UploadParams) (*cloudinarydomain.UploadResponse, error) {
	cfg := c.config.Cloudinary

	endpoint := fmt.Sprintf("%s/%s/%s/upload",
		strings.TrimRight(cfg.APIURL, "/"), cfg.CloudName, params.ResourceType)

	body, contentType, err := buildUploadForm(params, cfg.UploadPreset)
	if err != nil {
		return nil, fmt.Errorf("erro ao montar o formulário de upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp cloudinarydomain.ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("upload falhou com status %d: %s", resp.StatusCode, errResp.Error.Message)
		}
		return nil, fmt.Errorf("upload falhou com status: %s", resp.Status)
	}

	var response cloudinarydomain.UploadResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return &response, nil
}

func buildUploadForm(params cloudinarydomain.UploadParams, preset string) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	fileName := params.FileName
	if fileName == "" {
		fileName = "upload"
	}

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(params.Data); err != nil {
		return nil, "", err
	}

	if err := writer.WriteField("upload_preset", preset); err != nil {
		return nil, "", err
	}

	if params.PublicID != "" {
		if err := writer.WriteField("public_id", params.PublicID); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return buf, writer.FormDataContentType(), nil
}
