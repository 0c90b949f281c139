package i18n

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondWithSuccess writes {"message": <translated>} merged with payload.
// A map payload is merged at the top level, anything else goes under "data".
func RespondWithSuccess(c *gin.Context, statusCode int, msgID string, data map[string]any, payload any) {
	response := gin.H{"message": TranslateMessage(c, msgID, data)}
	switch p := payload.(type) {
	case nil:
	case gin.H:
		for k, v := range p {
			response[k] = v
		}
	case map[string]any:
		for k, v := range p {
			response[k] = v
		}
	default:
		response["data"] = payload
	}
	c.JSON(statusCode, response)
}

func RespondOK(c *gin.Context, msgID string, payload any) {
	RespondWithSuccess(c, http.StatusOK, msgID, nil, payload)
}

func RespondCreated(c *gin.Context, msgID string, payload any) {
	RespondWithSuccess(c, http.StatusCreated, msgID, nil, payload)
}
