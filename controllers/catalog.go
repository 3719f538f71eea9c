package controllers

import (
	"net/http"

	"snapbook-backend/services"
	"snapbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// CatalogController serves the public pages.
type CatalogController struct {
	Catalog *services.Catalog
}

// ListPhotographers handles GET /api/photographers?q=&location=&specialty=&sort=
func (cc *CatalogController) ListPhotographers(c *gin.Context) {
	var q services.CatalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	list := cc.Catalog.List(q)
	c.JSON(http.StatusOK, gin.H{
		"photographers": list,
		"count":         len(list),
		"specialties":   services.SpecialtyFilters,
	})
}

func (cc *CatalogController) FeaturedPhotographers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"photographers": cc.Catalog.Featured()})
}

func (cc *CatalogController) GetPhotographer(c *gin.Context) {
	p, err := cc.Catalog.Get(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Photographer not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (cc *CatalogController) About(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Catalog.About())
}
