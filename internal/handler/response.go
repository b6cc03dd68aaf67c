package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			c.Logger().Errorf("%s %s: %s", c.Request().Method, c.Path(), he.Message)
		}
		return c.JSON(he.Status, ErrorResponse{Error: he.Message, Fields: he.Fields})
	}

	//500
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	userID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}

// フォーム系のbodyをvalidator.Inputに詰め替える。
// JSONの数値や真偽値、form-urlencodedの値もすべて文字列として扱う
func bindInput(c echo.Context) (validator.Input, error) {
	raw := map[string]interface{}{}
	if err := c.Bind(&raw); err != nil {
		return nil, err
	}

	in := validator.Input{}
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
		case string:
			in[k] = t
		case []string:
			if len(t) > 0 {
				in[k] = t[0]
			}
		case []interface{}:
			if len(t) > 0 {
				in[k] = fmt.Sprint(t[0])
			}
		case float64:
			in[k] = strconv.FormatFloat(t, 'f', -1, 64)
		default:
			in[k] = fmt.Sprint(t)
		}
	}
	return in, nil
}

func paramID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// クエリの整数。未指定ならdef
func queryInt(c echo.Context, name string, def int) (int, bool) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func queryBool(c echo.Context, name string) (bool, bool) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return false, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
