package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ryabkov82/iwato-orders/internal/config"
	"github.com/ryabkov82/iwato-orders/internal/facility"
	"github.com/ryabkov82/iwato-orders/internal/orders"
)

const (
	xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	zipMime  = "application/zip"

	// текст внутренних ошибок остаётся в логе, клиенту уходит общее сообщение
	internalErrorMsg = "内部エラーが発生しました。時間をおいて再度お試しください。"
)

type facilityOption struct {
	Key   string `json:"key"`
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

type optionsResponse struct {
	FillOptions []string         `json:"fillOptions"`
	FillDefault []string         `json:"fillDefault"`
	Facilities  []facilityOption `json:"facilities"`
}

func (s *Server) options(c *gin.Context) {
	resp := optionsResponse{
		FillOptions: config.FillOptions,
		FillDefault: config.DefaultFill,
	}
	for _, p := range facility.All() {
		resp.Facilities = append(resp.Facilities, facilityOption{Key: p.Key(), Tag: p.Tag(), Label: p.Label()})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) process(c *gin.Context) {
	data, ok := s.upload(c)
	if !ok {
		return
	}

	opts := orders.ProcessOptions{HeaderRow: 1, HeaderDepth: 1, FillColumns: config.DefaultFill}
	if v := c.PostForm("header_row"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "header_row は1以上の整数で指定してください"})
			return
		}
		opts.HeaderRow = n
	}
	if v := c.PostForm("header_depth"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "header_depth は1または2で指定してください"})
			return
		}
		opts.HeaderDepth = n
	}
	if fill, ok := c.GetPostFormArray("fill"); ok {
		opts.FillColumns = fill
	}

	res, err := s.svc.ProcessRaw(data, opts)
	if err != nil {
		s.fail(c, "process", err)
		return
	}
	attachment(c, res.Name, xlsxMime, res.Data)
}

func (s *Server) buildOrders(c *gin.Context) {
	data, ok := s.upload(c)
	if !ok {
		return
	}
	p, err := facility.Lookup(c.PostForm("facility"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.svc.BuildOrders(data, p)
	if err != nil {
		s.fail(c, "buildOrders", err)
		return
	}
	attachment(c, res.Name, zipMime, res.Data)
}

// upload читает файл из multipart-поля file с ограничением размера
func (s *Server) upload(c *gin.Context) ([]byte, bool) {
	if c.Request.ContentLength > s.maxUpload {
		s.tooLarge(c)
		return nil, false
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.tooLarge(c)
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "ファイルを選択してください"})
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return data, true
}

func (s *Server) tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("ファイルサイズが上限(%dMB)を超えています", s.maxUpload>>20)})
}

func (s *Server) fail(c *gin.Context, funcName string, err error) {
	if orders.IsUserError(err) {
		s.log.WithField("funcName", funcName).Warn(err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	config.LogError(s.log, "server", funcName, c.Request.URL.Path, nil, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMsg})
}

func attachment(c *gin.Context, name, contentType string, data []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, contentType, data)
}
