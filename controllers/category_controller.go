package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"eshop/models"
	"eshop/repositories"
)

type CategoryController struct {
	Categories repositories.CategoryRepository
}

func NewCategoryController(categories repositories.CategoryRepository) *CategoryController {
	return &CategoryController{Categories: categories}
}

func (cc *CategoryController) GetCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	categories, err := cc.Categories.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (cc *CategoryController) GetCategory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	category, err := cc.Categories.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "the category with the given ID was not found"})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	created, err := cc.Categories.Create(ctx, &category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "the category cannot be created"})
		return
	}

	c.JSON(http.StatusOK, created)
}

func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	updated, err := cc.Categories.UpdateByID(ctx, c.Param("id"), &category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "the category cannot be updated"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	deleted, err := cc.Categories.DeleteByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "the category is deleted"})
}
