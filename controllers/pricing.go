package controllers

import (
	"net/http"
	"strconv"

	"snapbook-backend/models"
	"snapbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type FeatureInput struct {
	Feature string `json:"feature"`
}

func (d *DashboardController) ListPackages(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"packages":  w.Pricing.Packages(),
		"analytics": w.Pricing.Analytics(),
	})
}

// SavePackage upserts a full package. PUT /packages/:id takes the id from the path.
func (d *DashboardController) SavePackage(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	var pkg models.PricingPackage
	if err := c.ShouldBindJSON(&pkg); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if id := c.Param("id"); id != "" {
		pkg.ID = id
	}

	saved, err := w.Pricing.Save(c.Request.Context(), pkg)
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Package saved successfully!", saved)
}

func (d *DashboardController) DeletePackage(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	if err := w.Pricing.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Package deleted!", nil)
}

func (d *DashboardController) TogglePopular(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	pkgs, err := w.Pricing.TogglePopular(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": pkgs})
}

// Draft endpoints back the package dialog. The draft lives in the workspace
// until it is committed or discarded.

func (d *DashboardController) NewDraft(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"draft": w.Pricing.NewDraft()})
}

func (d *DashboardController) EditPackage(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	draft, err := w.Pricing.Edit(c.Param("id"))
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (d *DashboardController) GetDraft(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	draft, err := w.Pricing.Draft()
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (d *DashboardController) UpdateDraft(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	var pkg models.PricingPackage
	if err := c.ShouldBindJSON(&pkg); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	draft, err := w.Pricing.UpdateDraft(pkg)
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (d *DashboardController) AddDraftFeature(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	var input FeatureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	draft, err := w.Pricing.AddDraftFeature(input.Feature)
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (d *DashboardController) RemoveDraftFeature(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid feature index")
		return
	}
	draft, err := w.Pricing.RemoveDraftFeature(index)
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (d *DashboardController) CommitDraft(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	saved, err := w.Pricing.CommitDraft(c.Request.Context())
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Package saved successfully!", saved)
}

func (d *DashboardController) DiscardDraft(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	w.Pricing.DiscardDraft()
	c.Status(http.StatusNoContent)
}
