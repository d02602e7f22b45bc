package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"eshop/models"
	"eshop/repositories"
	"eshop/uploads"
)

const requestTimeout = 5 * time.Second

// maxGalleryImages caps how many files a single gallery update may carry.
const maxGalleryImages = 10

type ProductController struct {
	Products   repositories.ProductRepository
	Categories repositories.CategoryRepository
	Uploads    *uploads.Store
}

func NewProductController(products repositories.ProductRepository, categories repositories.CategoryRepository, store *uploads.Store) *ProductController {
	return &ProductController{Products: products, Categories: categories, Uploads: store}
}

// GetProducts lists products, optionally restricted by a comma-separated
// `categories` query of category ids.
func (pc *ProductController) GetProducts(c *gin.Context) {
	var categoryIDs []string
	if raw := c.Query("categories"); raw != "" {
		categoryIDs = strings.Split(raw, ",")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	products, err := pc.Products.List(ctx, categoryIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct answers 500 on a miss. Historical contract: clients depend on
// the status, so it stays even though 404 would read better.
func (pc *ProductController) GetProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	product, err := pc.Products.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no image in the request"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if _, err := pc.Categories.GetByID(ctx, c.PostForm("category")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid Category"})
		return
	}

	fileName, err := pc.Uploads.Save(c, "image", file)
	if err != nil {
		if errors.Is(err, uploads.ErrInvalidImageType) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid image type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	product := productFromForm(c)
	product.Image = uploads.BaseURL(c) + fileName

	created, err := pc.Products.Create(ctx, product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "the product cannot be created"})
		return
	}

	c.JSON(http.StatusOK, created)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if !repositories.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid Product Id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if _, err := pc.Categories.GetByID(ctx, c.PostForm("category")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid Category"})
		return
	}

	var imagePath string
	if file, err := c.FormFile("image"); err == nil {
		fileName, err := pc.Uploads.Save(c, "image", file)
		if err != nil {
			if errors.Is(err, uploads.ErrInvalidImageType) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid image type"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		imagePath = uploads.BaseURL(c) + fileName
	} else {
		// No new file: keep the image of the stored product.
		existing, err := pc.Products.GetByID(ctx, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "the product cannot be updated"})
			return
		}
		imagePath = existing.Image
	}

	product := productFromForm(c)
	product.Image = imagePath

	updated, err := pc.Products.UpdateByID(ctx, id, product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "the product cannot be updated"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	deleted, err := pc.Products.DeleteByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "the product is deleted"})
}

// GetProductCount reports the catalog size. An empty catalog answers 500,
// not zero; the contract is deliberately conservative.
func (pc *ProductController) GetProductCount(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	count, err := pc.Products.Count(ctx)
	if err != nil || count == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"productCount": count})
}

// GetFeaturedProducts lists featured products, capped by the optional
// `:count` path parameter. Absent or unparsable counts mean no cap.
func (pc *ProductController) GetFeaturedProducts(c *gin.Context) {
	var limit int64
	if raw := c.Param("count"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	products, err := pc.Products.ListFeatured(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, products)
}

// UpdateGalleryImages replaces the whole gallery with the uploaded files.
// Every declared MIME type is validated before any file is written, so a
// bad file in the batch leaves no partial uploads behind.
func (pc *ProductController) UpdateGalleryImages(c *gin.Context) {
	id := c.Param("id")
	if !repositories.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid Product Id"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid multipart form"})
		return
	}

	files := form.File["images"]
	if len(files) > maxGalleryImages {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "too many images"})
		return
	}
	for _, file := range files {
		if _, err := uploads.Extension(file.Header.Get("Content-Type")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid image type"})
			return
		}
	}

	base := uploads.BaseURL(c)
	imagePaths := []string{}
	for _, file := range files {
		fileName, err := pc.Uploads.Save(c, "images", file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		imagePaths = append(imagePaths, base+fileName)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	updated, err := pc.Products.SetImages(ctx, id, imagePaths)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "the product could not be updated"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// productFromForm builds a product from the multipart fields of a create or
// update request. Numeric fields that fail to parse stay at their zero
// value; the category id was resolved by the caller and is valid hex here.
func productFromForm(c *gin.Context) *models.Product {
	price, _ := strconv.ParseFloat(c.PostForm("price"), 64)
	countInStock, _ := strconv.Atoi(c.PostForm("countInStock"))
	rating, _ := strconv.ParseFloat(c.PostForm("rating"), 64)
	numReviews, _ := strconv.Atoi(c.PostForm("numReviews"))
	isFeatured, _ := strconv.ParseBool(c.PostForm("isFeatured"))
	categoryID, _ := primitive.ObjectIDFromHex(c.PostForm("category"))

	return &models.Product{
		Name:            c.PostForm("name"),
		Description:     c.PostForm("description"),
		RichDescription: c.PostForm("richDescription"),
		Brand:           c.PostForm("brand"),
		Price:           price,
		CategoryID:      categoryID,
		CountInStock:    countInStock,
		Rating:          rating,
		NumReviews:      numReviews,
		IsFeatured:      isFeatured,
	}
}
