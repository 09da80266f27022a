package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"perfume-shop/internal/domain"
	"perfume-shop/internal/repository"
)

func (h *Handler) ListProducts(c *gin.Context) {
	filter := repository.ProductFilter{
		Category: c.Query("category"),
	}
	if raw := c.Query("inStock"); raw != "" {
		v := raw == "true"
		filter.InStock = &v
	}

	products, fromFallback, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	source := "database"
	if fromFallback {
		source = "fallback"
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "source": source})
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	product, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	product, ok := h.bindProductForm(c)
	if !ok {
		return
	}

	created, err := h.catalog.Create(c.Request.Context(), product)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": created})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	product, ok := h.bindProductForm(c)
	if !ok {
		return
	}

	updated, err := h.catalog.Update(c.Request.Context(), id, product)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": updated})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}

// BulkInsertProducts wipes the catalog and restores the sample dataset.
func (h *Handler) BulkInsertProducts(c *gin.Context) {
	seeded, err := h.catalog.Reseed(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Catalog reseeded",
		"count":   len(seeded),
	})
}

// bindProductForm reads a product from a multipart form, storing the
// optional image upload. Reports its own HTTP errors and returns ok=false.
func (h *Handler) bindProductForm(c *gin.Context) (*domain.Product, bool) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a non-negative number"})
		return nil, false
	}
	quantity, err := strconv.Atoi(c.DefaultPostForm("quantity", "0"))
	if err != nil || quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a non-negative integer"})
		return nil, false
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product name is required"})
		return nil, false
	}

	category := domain.ProductCategory(c.PostForm("category"))
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category must be one of floral, woody, oriental, fresh"})
		return nil, false
	}

	badge := domain.ProductBadge(c.DefaultPostForm("badge", string(domain.BadgeNone)))
	if !badge.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown badge"})
		return nil, false
	}

	imagePath, ok := h.storeUploadedImage(c)
	if !ok {
		return nil, false
	}

	return &domain.Product{
		Name:        name,
		Description: strings.TrimSpace(c.PostForm("description")),
		Price:       price,
		Category:    category,
		Notes:       parseNotes(c.PostForm("notes")),
		Image:       imagePath,
		Badge:       badge,
		Quantity:    quantity,
	}, true
}

// parseNotes accepts either a JSON array or a comma-separated list.
func parseNotes(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var notes []string
	if err := json.Unmarshal([]byte(raw), &notes); err == nil {
		return notes
	}
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			notes = append(notes, n)
		}
	}
	return notes
}
