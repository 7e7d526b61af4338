package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/yourusername/store-assistant/internal/domain/entity"
	"github.com/yourusername/store-assistant/internal/usecase"
)

const maxChatBody = 1 << 20

// Handler HTTP handlers over the use cases
type Handler struct {
	chat     usecase.ChatUseCase
	products usecase.ProductUseCase
	logger   zerolog.Logger
}

// NewHandler handlers over the chat and catalog use cases
func NewHandler(chat usecase.ChatUseCase, products usecase.ProductUseCase, logger zerolog.Logger) *Handler {
	return &Handler{
		chat:     chat,
		products: products,
		logger:   logger.With().Str("component", "http").Logger(),
	}
}

// ChatResponse body of POST /chat
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ProductDTO product as listed by GET /trending
type ProductDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       string  `json:"stock"`
	InStock     bool    `json:"in_stock"`
	Location    string  `json:"location"`
}

// TrendingResponse body of GET /trending
type TrendingResponse struct {
	Products []ProductDTO `json:"products"`
}

// HealthResponse body of GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Products int    `json:"products"`
}

// Chat resolves the message and always answers 200.
// A missing, non-string or unreadable message is treated as "".
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	message := decodeMessage(r.Body)
	reply := h.chat.ProcessMessage(r.Context(), message)
	h.writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

// Trending first products of the catalog
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	products := h.products.Trending()
	resp := TrendingResponse{Products: make([]ProductDTO, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, toProductDTO(p))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Health liveness with the catalog size
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Products: h.products.Count()})
}

func decodeMessage(body io.Reader) string {
	if body == nil {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(body, maxChatBody))
	if err != nil {
		return ""
	}

	var req map[string]any
	if err := json.Unmarshal(data, &req); err != nil {
		return ""
	}
	message, _ := req["message"].(string)
	return message
}

func toProductDTO(p entity.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock.Label(),
		InStock:     p.Stock == entity.InStock,
		Location:    p.Aisle(),
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("write response")
	}
}
