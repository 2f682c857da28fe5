package panel

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/disersoft-code/traductor-pmv/internal/ntcip"
	"github.com/disersoft-code/traductor-pmv/internal/util"
)

const (
	// BitmapHeaderLen is the BMP file and info header plus the 256 entry
	// palette, none of which the sign stores.
	BitmapHeaderLen = 1078
	BitmapChunkLen  = 1020
	BitmapChunks    = 6
)

// Graphic status values written around an upload.
const (
	graphicModifyReq   = 7
	graphicValidateReq = 8
)

func (p *Panel) GetGraphic(ctx context.Context, ip string, id int) (*Graphic, error) {
	r, err := p.open("get graphic", ip)
	if err != nil {
		return nil, err
	}
	if err := r.checkGraphicID(ctx, id); err != nil {
		return nil, err
	}
	return r.readGraphic(ctx, id)
}

// GetGraphics pages over the graphic table.
func (p *Panel) GetGraphics(ctx context.Context, ip string, page, size int) (Page[*Graphic], error) {
	r, err := p.open("get graphics", ip)
	if err != nil {
		return Page[*Graphic]{}, err
	}
	total, err := r.getInt(ctx, ntcip.MaxGraphics)
	if err != nil {
		return Page[*Graphic]{}, err
	}
	return collect(page, size, total, func(i int) (*Graphic, error) {
		return r.readGraphic(ctx, i+1)
	})
}

// SetGraphic uploads g: status modifyReq, the definition, six bitmap
// blocks, then status validateReq. The first failing step aborts.
func (p *Panel) SetGraphic(ctx context.Context, ip string, g GraphicUpload) error {
	r, err := p.open("set graphic", ip)
	if err != nil {
		return err
	}
	if err := r.checkGraphicID(ctx, g.Number); err != nil {
		return err
	}

	var color uint64
	if s := strings.TrimSpace(g.TransparentColor); s != "" {
		color, err = strconv.ParseUint(s, 10, 8)
		if err != nil {
			return r.fail(WrongData, fmt.Errorf("transparent color %q: %w", g.TransparentColor, err))
		}
	}
	bmp, err := base64.StdEncoding.DecodeString(g.BMP)
	if err != nil {
		return r.fail(WrongData, fmt.Errorf("decoding bitmap: %w", err))
	}

	n := g.Number
	statusOID := ntcip.Graphic(ntcip.GraphicStatus, n)

	r.log.Debug("Sending step one for graphic %d", n)
	if err := r.set(ctx, ntcip.Int(statusOID, graphicModifyReq)); err != nil {
		return err
	}

	r.log.Debug("Sending step two for graphic %d", n)
	err = r.set(ctx,
		ntcip.Int(ntcip.Graphic(ntcip.GraphicNumber, n), n),
		ntcip.Octets(ntcip.Graphic(ntcip.GraphicName, n), []byte(g.Name)),
		ntcip.Int(ntcip.Graphic(ntcip.GraphicHeight, n), g.Height),
		ntcip.Int(ntcip.Graphic(ntcip.GraphicWidth, n), g.Width),
		ntcip.Int(ntcip.Graphic(ntcip.GraphicType, n), g.Type),
		ntcip.Int(ntcip.Graphic(ntcip.GraphicTransparentEnabled, n), g.TransparentEnabled),
		ntcip.Octets(ntcip.Graphic(ntcip.GraphicTransparentColor, n), []byte{byte(color)}),
	)
	if err != nil {
		return err
	}

	r.log.Debug("Sending step three for graphic %d: %d bitmap bytes", n, len(bmp))
	for i, chunk := range SplitBitmap(bmp) {
		if err := r.set(ctx, ntcip.Octets(ntcip.GraphicBitmap(n, i+1), chunk)); err != nil {
			return err
		}
	}

	r.log.Debug("Sending step four for graphic %d", n)
	if err := r.set(ctx, ntcip.Int(statusOID, graphicValidateReq)); err != nil {
		return err
	}
	r.log.Info("Graphic %d uploaded", n)
	return nil
}

// SplitBitmap drops the BMP header and returns the pixel data as exactly
// BitmapChunks blocks of BitmapChunkLen bytes, zero padded.
func SplitBitmap(bmp []byte) [][]byte {
	var body []byte
	if len(bmp) > BitmapHeaderLen {
		body = bmp[BitmapHeaderLen:]
	}
	chunks := make([][]byte, BitmapChunks)
	for i := range chunks {
		chunks[i] = make([]byte, BitmapChunkLen)
		if start := i * BitmapChunkLen; start < len(body) {
			copy(chunks[i], body[start:])
		}
	}
	return chunks
}

func (r *request) checkGraphicID(ctx context.Context, id int) error {
	return r.checkRange(ctx, ntcip.MaxGraphics, id, WrongGraphicId)
}

func (r *request) readGraphic(ctx context.Context, n int) (*Graphic, error) {
	vbs, err := r.get(ctx,
		ntcip.Graphic(ntcip.GraphicNumber, n),
		ntcip.Graphic(ntcip.GraphicName, n),
		ntcip.Graphic(ntcip.GraphicHeight, n),
		ntcip.Graphic(ntcip.GraphicWidth, n),
		ntcip.Graphic(ntcip.GraphicType, n),
		ntcip.Graphic(ntcip.GraphicID, n),
		ntcip.Graphic(ntcip.GraphicTransparentEnabled, n),
		ntcip.Graphic(ntcip.GraphicTransparentColor, n),
		ntcip.Graphic(ntcip.GraphicStatus, n),
	)
	if err != nil {
		return nil, err
	}

	var color string
	if b := vbs[7].Bytes(); len(b) > 0 {
		color = strconv.Itoa(int(b[0]))
	}
	return &Graphic{
		Number:             vbs[0].Int(),
		Name:               util.Normalize(vbs[1].String()),
		Height:             vbs[2].Int(),
		Width:              vbs[3].Int(),
		Type:               vbs[4].Int(),
		ID:                 vbs[5].Int(),
		TransparentEnabled: vbs[6].Int(),
		TransparentColor:   color,
		Status:             vbs[8].Int(),
	}, nil
}
