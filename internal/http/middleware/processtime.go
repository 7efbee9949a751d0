package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const ProcessTimeHeader = "X-Process-Time"

// timedWriter stamps the elapsed handler time into the headers right before
// they are flushed.
type timedWriter struct {
	gin.ResponseWriter
	start   time.Time
	stamped bool
}

func (w *timedWriter) stamp() {
	if w.stamped {
		return
	}
	w.stamped = true
	w.Header().Set(ProcessTimeHeader, strconv.FormatFloat(time.Since(w.start).Seconds(), 'f', -1, 64))
}

func (w *timedWriter) WriteHeaderNow() {
	w.stamp()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *timedWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(b)
}

func (w *timedWriter) WriteString(s string) (int, error) {
	w.stamp()
	return w.ResponseWriter.WriteString(s)
}

// ProcessTime adds X-Process-Time (seconds, float) to every response.
func ProcessTime() gin.HandlerFunc {
	return func(c *gin.Context) {
		tw := &timedWriter{ResponseWriter: c.Writer, start: time.Now()}
		c.Writer = tw
		c.Next()
		// Bodyless responses are flushed by gin after the chain returns.
		if !tw.Written() {
			tw.stamp()
		}
	}
}
