package response

import "github.com/gin-gonic/gin"

// Envelope is the uniform success body: status code, payload, message
type Envelope struct {
	Status  int    `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

// ErrorBody is the parallel error envelope
type ErrorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// OK writes a success envelope
func OK(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{Status: status, Data: data, Message: message})
}

// Fail writes an error envelope
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Status: status, Message: message})
}

// FailDetail writes an error envelope with a detail string
func FailDetail(c *gin.Context, status int, message, detail string) {
	c.JSON(status, ErrorBody{Status: status, Message: message, Detail: detail})
}

// Abort writes an error envelope and stops the handler chain, for middleware use
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Status: status, Message: message})
}
