package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "bookhub.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error translates err into the error taxonomy and sends it. Wrapped
// causes stay server-side; clients only ever see the code and message.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.From(err)
	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
