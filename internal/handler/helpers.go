package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/msp-aci-api/pkg/errors"
)

// parseID reads an integer path parameter. Zero and negative ids are well
// formed and simply match no record.
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrInvalidID, "invalid "+name+" format")
	}
	return id, nil
}

// bindJSON decodes the request body, naming the offending field when the
// body carries a value of the wrong JSON type.
func bindJSON(c *gin.Context, dest interface{}) error {
	err := c.ShouldBindJSON(dest)
	if err == nil {
		return nil
	}
	appErr := appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		appErr.Details = []appErrors.FieldError{{
			Field:   typeErr.Field,
			Rule:    "type",
			Message: "must be a " + typeErr.Type.String(),
		}}
	}
	return appErr
}
