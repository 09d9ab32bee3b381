package cataloging

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
	"github.com/vfg2006/catalog-manager-api/pkg/apiErrors"
)

// resolveImage decide o valor final do campo image:
// arquivo com backend configurado vira URL remota, arquivo sem backend vira data URI e URL é mantida.
func (s *Service) resolveImage(ctx context.Context, input ProductInput) (string, error) {
	if input.ImageFile.IsEmpty() {
		return strings.TrimSpace(input.ImageURL), nil
	}

	if s.remote.IsConfigured() {
		url, err := s.remote.UploadImage(ctx, *input.ImageFile)
		if err != nil {
			logrus.WithError(err).Error("cataloging: falha no upload da imagem")
			return "", NewCatalogError(ErrImageUpload, apiErrors.ErrExternalService, "Falha ao enviar a imagem, nada foi salvo")
		}
		return url, nil
	}

	return toDataURI(*input.ImageFile), nil
}

func toDataURI(file domain.ImageFile) string {
	contentType := file.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(file.Data)
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(file.Data)
}
