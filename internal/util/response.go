package util

import (
	"errors"
	"net/http"

	"neu4g_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构：success 标志 + 错误信息 + 数据
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Success bool        `json:"success"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Data:    data,
		Success: true,
	})
}

func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Error:   message,
		Success: false,
	})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// RespondError 将错误分类映射到可区分的响应（空结果成功与失败绝不混淆）
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrConfiguration):
		logger.Log.Error("store not configured", zap.Error(err))
		Fail(c, http.StatusInternalServerError, err.Error())
	default:
		logger.Log.Error("request failed", zap.Error(err))
		Fail(c, http.StatusInternalServerError, err.Error())
	}
}
