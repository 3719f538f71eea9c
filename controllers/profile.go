package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"snapbook-backend/models"
	"snapbook-backend/services"
	"snapbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes bounds each uploaded file.
var maxUploadBytes int64 = 10 << 20

var errUploadTooLarge = errors.New("upload too large")

type SpecialtyInput struct {
	Specialty string `json:"specialty"`
}

func (d *DashboardController) GetProfile(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile": w.Profile.Profile(),
		"editing": w.Profile.Editing(),
	})
}

func (d *DashboardController) EditProfile(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	w.Profile.Edit()
	c.JSON(http.StatusOK, gin.H{"profile": w.Profile.Profile(), "editing": true})
}

func (d *DashboardController) UpdateProfile(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	var input models.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	p, err := w.Profile.Update(input)
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

func (d *DashboardController) AddSpecialty(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	var input SpecialtyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	added, err := w.Profile.AddSpecialty(input.Specialty)
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"added":       added,
		"specialties": w.Profile.Profile().Specialties,
	})
}

func (d *DashboardController) RemoveSpecialty(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	if err := w.Profile.RemoveSpecialty(c.Param("name")); err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"specialties": w.Profile.Profile().Specialties})
}

// UploadAvatar takes a multipart "avatar" file.
func (d *DashboardController) UploadAvatar(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Avatar file is required")
		return
	}
	data, err := readUpload(fh)
	if err != nil {
		respondUploadError(c, fh, err)
		return
	}

	src, err := w.Profile.SetAvatar(c.Request.Context(), services.UploadFile{Name: fh.Filename, Data: data})
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Profile picture updated!", gin.H{"avatar": src})
}

func (d *DashboardController) SaveProfile(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	p, err := w.Profile.Save(c.Request.Context())
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Profile updated successfully!", p)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > maxUploadBytes {
		return nil, errUploadTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxUploadBytes {
		return nil, errUploadTooLarge
	}
	return data, nil
}

func respondUploadError(c *gin.Context, fh *multipart.FileHeader, err error) {
	if errors.Is(err, errUploadTooLarge) {
		utils.RespondWithError(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("%s is larger than %d MB", fh.Filename, maxUploadBytes>>20))
		return
	}
	utils.RespondWithError(c, http.StatusBadRequest, "Failed to read "+fh.Filename)
}
