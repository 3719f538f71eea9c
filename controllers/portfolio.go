package controllers

import (
	"fmt"
	"net/http"

	"snapbook-backend/services"
	"snapbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type CategoryInput struct {
	Category string `json:"category" binding:"required"`
}

func (d *DashboardController) ListPortfolio(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"images":     w.Portfolio.Filter(c.Query("category")),
		"categories": w.Portfolio.CategoryCount(),
	})
}

// UploadPortfolio takes one or more multipart "images" files.
func (d *DashboardController) UploadPortfolio(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid upload: "+err.Error())
		return
	}
	headers := form.File["images"]
	files := make([]services.UploadFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readUpload(fh)
		if err != nil {
			respondUploadError(c, fh, err)
			return
		}
		files = append(files, services.UploadFile{Name: fh.Filename, Data: data})
	}

	added, err := w.Portfolio.Upload(c.Request.Context(), files)
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusCreated, fmt.Sprintf("%d image(s) uploaded successfully!", len(added)), added)
}

func (d *DashboardController) UpdateImageCategory(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	img, err := w.Portfolio.SetCategory(c.Request.Context(), c.Param("id"), input.Category)
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Category updated!", img)
}

func (d *DashboardController) DeleteImage(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	if err := w.Portfolio.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Image deleted!", nil)
}
