package handler

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cast"
	"github.com/vfg2006/catalog-manager-api/internal/domain"
	"github.com/vfg2006/catalog-manager-api/internal/usecases/cataloging"
	"github.com/vfg2006/catalog-manager-api/pkg/apiErrors"
	"github.com/vfg2006/catalog-manager-api/pkg/utils"
)

const maxUploadSize = 10 << 20

// productRequest aceita preço e desconto como número ou texto
type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       any    `json:"price"`
	Discount    any    `json:"discount"`
	Image       string `json:"image"`
}

type promoRequest struct {
	Percent any `json:"percent"`
}

type productResponse struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Price             float64       `json:"price"`
	Category          string        `json:"category"`
	Image             string        `json:"image"`
	Discount          *int          `json:"discount,omitempty"`
	Promo             *domain.Promo `json:"promo,omitempty"`
	CreatedAt         *time.Time    `json:"createdAt,omitempty"`
	EffectiveDiscount int           `json:"effective_discount"`
	FinalPrice        float64       `json:"final_price"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		Category:          p.Category,
		Image:             p.Image,
		Discount:          p.Discount,
		Promo:             p.Promo,
		CreatedAt:         p.CreatedAt,
		EffectiveDiscount: p.EffectiveDiscount(),
		FinalPrice:        utils.DecimalToFloat(p.FinalPrice()),
	}
}

func ListProducts(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := cataloging.ProductFilter{
			Category:       query.Get("category"),
			Query:          query.Get("q"),
			OnlyDiscounted: cast.ToBool(query.Get("discounted")),
		}

		products, err := service.List(r.Context(), filter)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar produtos")
			return
		}

		resp := make([]productResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, toProductResponse(p))
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

func GetProduct(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		product, err := service.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar produto")
			return
		}

		writeJSON(w, http.StatusOK, toProductResponse(*product))
	})
}

func CreateProduct(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		input, err := parseProductInput(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		product, err := service.Create(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar produto")
			return
		}

		writeJSON(w, http.StatusCreated, toProductResponse(*product))
	})
}

func UpdateProduct(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		input, err := parseProductInput(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		product, err := service.Update(r.Context(), id, input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar produto")
			return
		}

		writeJSON(w, http.StatusOK, toProductResponse(*product))
	})
}

func DeleteProduct(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, err, "Erro ao remover produto")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func ApplyPromo(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req promoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		percent, ok := cataloging.ParsePercent(req.Percent)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Percentual deve ser um número inteiro", []cataloging.ValidationError{
				{Field: "percent", Description: "Percentual deve ser um número inteiro"},
			})
			return
		}

		product, err := service.ApplyPromo(r.Context(), id, percent)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao aplicar promoção")
			return
		}

		writeJSON(w, http.StatusOK, toProductResponse(*product))
	})
}

func RemovePromo(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		product, err := service.RemovePromo(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao remover promoção")
			return
		}

		writeJSON(w, http.StatusOK, toProductResponse(*product))
	})
}

func ExportProducts(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := service.ExportJSON(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao exportar produtos")
			return
		}

		writeAttachment(w, "application/json", "produtos.json", data)
	})
}

// parseProductInput aceita JSON ou multipart com o arquivo em image_file
func parseProductInput(r *http.Request) (cataloging.ProductInput, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return parseMultipartProduct(r)
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return cataloging.ProductInput{}, err
	}

	return cataloging.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       cast.ToString(req.Price),
		Discount:    cast.ToString(req.Discount),
		ImageURL:    req.Image,
	}, nil
}

func parseMultipartProduct(r *http.Request) (cataloging.ProductInput, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return cataloging.ProductInput{}, err
	}

	input := cataloging.ProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Price:       r.FormValue("price"),
		Discount:    r.FormValue("discount"),
		ImageURL:    r.FormValue("image"),
	}

	file, header, err := r.FormFile("image_file")
	if err == http.ErrMissingFile {
		return input, nil
	}
	if err != nil {
		return input, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return input, err
	}

	input.ImageFile = &domain.ImageFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	return input, nil
}
