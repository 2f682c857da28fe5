package panel

import (
	"context"
	"encoding/hex"
	"unicode"

	"github.com/disersoft-code/traductor-pmv/internal/ntcip"
	"github.com/disersoft-code/traductor-pmv/internal/util"
)

func (p *Panel) GetFont(ctx context.Context, ip string, id int) (*Font, error) {
	r, err := p.open("get font", ip)
	if err != nil {
		return nil, err
	}
	if err := r.checkRange(ctx, ntcip.NumFonts, id, WrongFontId); err != nil {
		return nil, err
	}
	return r.readFont(ctx, id)
}

// GetFonts pages over the font table.
func (p *Panel) GetFonts(ctx context.Context, ip string, page, size int) (Page[*Font], error) {
	r, err := p.open("get fonts", ip)
	if err != nil {
		return Page[*Font]{}, err
	}
	total, err := r.getInt(ctx, ntcip.NumFonts)
	if err != nil {
		return Page[*Font]{}, err
	}
	return collect(page, size, total, func(i int) (*Font, error) {
		return r.readFont(ctx, i+1)
	})
}

func (r *request) readFont(ctx context.Context, i int) (*Font, error) {
	vbs, err := r.get(ctx,
		ntcip.Font(ntcip.FontIndex, i),
		ntcip.Font(ntcip.FontNumber, i),
		ntcip.Font(ntcip.FontName, i),
		ntcip.Font(ntcip.FontHeight, i),
		ntcip.Font(ntcip.FontVersion, i),
		ntcip.Font(ntcip.FontStatus, i),
	)
	if err != nil {
		return nil, err
	}
	return &Font{
		Index:     vbs[0].Int(),
		Number:    vbs[1].Int(),
		Name:      util.Normalize(vbs[2].String()),
		Height:    vbs[3].Int(),
		VersionID: octetText(vbs[4].Bytes()),
		Status:    vbs[5].Int(),
	}, nil
}

// octetText renders printable octets as text and anything else as hex.
func octetText(b []byte) string {
	for _, c := range b {
		if c > unicode.MaxASCII || !unicode.IsPrint(rune(c)) {
			return hex.EncodeToString(b)
		}
	}
	return string(b)
}
