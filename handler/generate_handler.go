package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/tieubaoca/litellm-chat/service"
	"github.com/tieubaoca/litellm-chat/types"
)

type GenerateHandler interface {
	HandleGenerate(c *gin.Context)
}

type generateHandler struct {
	generator service.Generator
}

func NewGenerateHandler(generator service.Generator) GenerateHandler {
	return &generateHandler{
		generator: generator,
	}
}

func (h *generateHandler) HandleGenerate(c *gin.Context) {
	// the whole body must be one JSON value, not a value followed by junk
	raw, err := c.GetRawData()
	if err != nil || !json.Valid(raw) {
		abortWithDetail(c, http.StatusUnprocessableEntity, types.DetailInvalidBody)
		return
	}

	var req types.GenerateRequest
	if err := binding.JSON.BindBody(raw, &req); err != nil {
		abortWithDetail(c, http.StatusUnprocessableEntity, bindingDetail(err), err.Error())
		return
	}

	message := strings.TrimSpace(*req.Message)
	if message == "" {
		abortWithDetail(c, http.StatusBadRequest, types.DetailEmptyMessage)
		return
	}

	text, err := h.generator.Generate(c.Request.Context(), message)
	if err != nil {
		provider := "unknown"
		var genErr *service.GenerationError
		if errors.As(err, &genErr) && genErr.Provider != "" {
			provider = genErr.Provider
		}
		abortWithDetail(c, http.StatusInternalServerError, err.Error(),
			"generation failed ("+provider+"): "+err.Error())
		return
	}

	c.JSON(http.StatusOK, types.GenerateResponse{
		Response: text,
	})
}

func bindingDetail(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return types.DetailMissingMessage
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "message" {
		return types.DetailMessageType
	}
	return types.DetailInvalidBody
}
