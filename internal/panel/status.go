package panel

import (
	"context"
	"time"

	"github.com/disersoft-code/traductor-pmv/internal/ntcip"
	"github.com/disersoft-code/traductor-pmv/internal/types"
)

const statusTimeLayout = "2006/01/02 15:04:05"

// GetStatus reads the sign's status block and the message on display.
func (p *Panel) GetStatus(ctx context.Context, ip string) (*SignStatus, error) {
	r, err := p.open("get status", ip)
	if err != nil {
		return nil, err
	}
	return r.readStatus(ctx)
}

// RestartPanel requests a software reset.
func (p *Panel) RestartPanel(ctx context.Context, ip string) error {
	r, err := p.open("restart panel", ip)
	if err != nil {
		return err
	}
	r.log.Info("Restarting sign")
	return r.set(ctx, ntcip.Int(ntcip.SoftwareReset, 1))
}

func (r *request) readStatus(ctx context.Context) (*SignStatus, error) {
	current, err := r.readMessage(ctx, types.MemoryTypeCurrentBuffer, 1, false)
	if err != nil {
		return nil, err
	}

	vbs, err := r.get(ctx,
		ntcip.GlobalTime,
		ntcip.SignHeight,
		ntcip.SignWidth,
		ntcip.NumFonts,
		ntcip.MaxPages,
		ntcip.MaxMultiStringLength,
		ntcip.NumPermanentMessages,
		ntcip.NumChangeableMessages,
		ntcip.MaxChangeableMessages,
		ntcip.MaxGraphics,
		ntcip.NumGraphics,
		ntcip.IlluminationControl,
		ntcip.IlluminationBrightness,
		ntcip.IlluminationManual,
		ntcip.DefaultFont,
		ntcip.MaxFontCharacters,
	)
	if err != nil {
		return nil, err
	}

	// globalTime is unsigned seconds since the epoch.
	now := time.Unix(int64(uint32(vbs[0].Int())), 0)
	control := types.ParseIlluminationControl(vbs[11].Int())
	return &SignStatus{
		CurrentDate:                     now.Unix(),
		CurrentDateGMT:                  now.UTC().Format(statusTimeLayout),
		LocalTime:                       now.In(r.p.loc).Format(statusTimeLayout),
		SignHeight:                      vbs[1].Int(),
		SignWidth:                       vbs[2].Int(),
		NumberFonts:                     vbs[3].Int(),
		DefaultFont:                     vbs[14].Int(),
		MaximumFontCharacters:           vbs[15].Int(),
		MaximumNumberPages:              vbs[4].Int(),
		MaximumMultiStringLength:        vbs[5].Int(),
		NumberPermanentMessages:         vbs[6].Int(),
		NumberChangeableMessages:        vbs[7].Int(),
		MaximumNumberChangeableMessages: vbs[8].Int(),
		MaximumNumberGraphics:           vbs[9].Int(),
		NumberGraphics:                  vbs[10].Int(),
		IlluminationControl:             control,
		IlluminationControlName:         control.String(),
		BrightnessLevel:                 vbs[12].Int(),
		IlluminationManualLevel:         vbs[13].Int(),
		CurrentMessage:                  current,
	}, nil
}
