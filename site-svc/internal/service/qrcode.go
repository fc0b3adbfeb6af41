package service

import (
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderNumber string) ([]byte, error)
}

type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

func (g DefaultQRGenerator) Generate(orderNumber string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	link := strings.TrimRight(g.BaseURL, "/") + "/confirmation.html?order=" + url.QueryEscape(orderNumber)
	return qrcode.Encode(link, qrcode.Medium, size)
}
