package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tieubaoca/litellm-chat/logging"
	"github.com/tieubaoca/litellm-chat/types"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

// RequestLogger replaces gin's own access log so everything goes through logrus.
func RequestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	log.Infof("%s -- %s -- %s -- %d -- %s",
		c.ClientIP(), c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
}

// abortWithDetail writes the error body. consoleStr, when given, is logged
// instead of the client-facing detail.
func abortWithDetail(c *gin.Context, code int, detail string, consoleStr ...string) {
	msg := detail
	if len(consoleStr) > 0 {
		msg = consoleStr[0]
	}
	if code >= 500 {
		log.Errorln(msg)
	} else {
		log.Debugln(msg)
	}
	c.AbortWithStatusJSON(code, types.ErrorResponse{Detail: detail})
}
