package panel

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/disersoft-code/traductor-pmv/internal/multi"
	"github.com/disersoft-code/traductor-pmv/internal/ntcip"
	"github.com/disersoft-code/traductor-pmv/internal/types"
	"github.com/disersoft-code/traductor-pmv/internal/util"
)

const changeable = types.MemoryTypeChangeable

// GetMessage reads changeable slot id with its decoded document. IsActive
// is set when the slot owner matches the message on display.
func (p *Panel) GetMessage(ctx context.Context, ip string, id int) (*Message, error) {
	r, err := p.open("get message", ip)
	if err != nil {
		return nil, err
	}

	status, err := r.readStatus(ctx)
	if err != nil {
		return nil, err
	}

	msg, err := r.readMessage(ctx, changeable, id, true)
	if err != nil {
		return nil, err
	}
	msg.IsActive = msg.Owner == status.CurrentMessage.Owner
	return msg, nil
}

// GetMessages pages over the changeable message table.
func (p *Panel) GetMessages(ctx context.Context, ip string, page, size int) (Page[*Message], error) {
	r, err := p.open("get messages", ip)
	if err != nil {
		return Page[*Message]{}, err
	}

	status, err := r.readStatus(ctx)
	if err != nil {
		return Page[*Message]{}, err
	}

	total, err := r.getInt(ctx, ntcip.MaxChangeableMessages)
	if err != nil {
		return Page[*Message]{}, err
	}
	r.log.Debug("Sign holds %d changeable messages", total)

	return collect(page, size, total, func(i int) (*Message, error) {
		msg, err := r.readMessage(ctx, changeable, i+1, false)
		if err != nil {
			return nil, err
		}
		msg.IsActive = msg.Owner == status.CurrentMessage.Owner
		return msg, nil
	})
}

// WriteMessage stores m in its slot and, when m.Activate is set and the
// sign accepts the MULTI string, puts it on display.
func (p *Panel) WriteMessage(ctx context.Context, ip string, m MessageWrite) error {
	r, err := p.open("write message", ip)
	if err != nil {
		return err
	}
	return r.writeMessage(ctx, m, false)
}

// DeleteMessage overwrites slot id with the blank message.
func (p *Panel) DeleteMessage(ctx context.Context, ip string, id int) error {
	r, err := p.open("delete message", ip)
	if err != nil {
		return err
	}
	return r.writeMessage(ctx, MessageWrite{
		Number: id,
		Multi:  multi.Blank,
		Owner:  strconv.Itoa(id),
	}, true)
}

// ActivateMessage displays the message stored in slot id, or blanks the
// sign when activate is false.
func (p *Panel) ActivateMessage(ctx context.Context, ip string, id int, activate bool) error {
	r, err := p.open("activate message", ip)
	if err != nil {
		return err
	}

	if _, err := r.readMessage(ctx, changeable, id, true); err != nil {
		return err
	}

	if !activate {
		r.log.Debug("Deactivating message %d", id)
		return r.set(ctx, ntcip.Octets(ntcip.ActivateMessage, ntcip.DeactivationFrame(r.addr)))
	}

	v, err := r.readBack(ctx, id)
	if err != nil {
		return err
	}
	if err := r.checkValidation(v); err != nil {
		return err
	}
	return r.activate(ctx, v)
}

func (r *request) checkMessageID(ctx context.Context, id int) error {
	return r.checkRange(ctx, ntcip.MaxChangeableMessages, id, WrongMessageId)
}

// readMessage reads one row of the message table. withDocument also
// decodes the MULTI string; a malformed string is logged, not fatal.
func (r *request) readMessage(ctx context.Context, mem types.MemoryType, id int, withDocument bool) (*Message, error) {
	r.log.Debug("Reading %s message %d", mem, id)
	if err := r.checkMessageID(ctx, id); err != nil {
		return nil, err
	}

	vbs, err := r.get(ctx,
		ntcip.Message(ntcip.MessageMulti, mem, id),
		ntcip.Message(ntcip.MessageOwner, mem, id),
		ntcip.Message(ntcip.MessageCRC, mem, id),
		ntcip.Message(ntcip.MessageBeacon, mem, id),
		ntcip.Message(ntcip.MessagePixelService, mem, id),
		ntcip.Message(ntcip.MessageRunTimePriority, mem, id),
		ntcip.Message(ntcip.MessageStatus, mem, id),
		ntcip.Message(ntcip.MessageMemoryType, mem, id),
	)
	if err != nil {
		return nil, err
	}

	status := types.ParseMessageStatus(vbs[6].Int())
	memType := types.ParseMemoryType(vbs[7].Int())
	msg := &Message{
		Number:          id,
		Multi:           vbs[0].String(),
		Owner:           util.Normalize(vbs[1].String()),
		CRC:             vbs[2].Int(),
		Beacon:          vbs[3].Int(),
		PixelService:    vbs[4].Int(),
		RunTimePriority: vbs[5].Int(),
		Status:          status,
		StatusName:      status.String(),
		MemoryType:      memType,
		MemoryTypeName:  memType.String(),
		Text:            multi.PlainText(vbs[0].String()),
	}
	r.log.Debug("Message %d: %s", id, msg.Multi)

	if withDocument {
		doc, err := multi.Decode(msg.Multi)
		if err != nil {
			r.log.Warn("Message %d has malformed MULTI: %v", id, err)
		}
		msg.Document = &doc
	}
	return msg, nil
}

// validation is what the sign reports after a validateReq.
type validation struct {
	memType  int
	number   int
	crc      int
	multi    string
	owner    string
	status   types.MessageStatus
	validate int
	syntax   int
	position int
}

func (r *request) writeMessage(ctx context.Context, m MessageWrite, blank bool) error {
	if err := r.checkMessageID(ctx, m.Number); err != nil {
		return err
	}

	text := m.Multi
	if doc := (multi.Document{Pages: m.Pages}); !doc.Empty() {
		text = multi.Encode(doc)
	}
	r.log.Debug("MULTI for message %d: %s", m.Number, text)
	if text == "" && !blank {
		return r.fail(InvalidModel, errors.New("empty MULTI string"))
	}

	statusOID := ntcip.Message(ntcip.MessageStatus, changeable, m.Number)

	r.log.Debug("Sending step one for message %d", m.Number)
	if err := r.set(ctx, ntcip.Int(statusOID, types.MessageStatusModifyReq.Wire())); err != nil {
		return err
	}

	r.log.Debug("Sending step two for message %d", m.Number)
	err := r.set(ctx,
		ntcip.Octets(ntcip.Message(ntcip.MessageMulti, changeable, m.Number), []byte(text)),
		ntcip.Octets(ntcip.Message(ntcip.MessageOwner, changeable, m.Number), []byte(m.Owner)),
		ntcip.Int(statusOID, types.MessageStatusValidateReq.Wire()),
	)
	if err != nil {
		return err
	}

	r.log.Debug("Sending step three for message %d", m.Number)
	v, err := r.readBack(ctx, m.Number)
	if err != nil {
		return err
	}
	if err := r.checkValidation(v); err != nil {
		return err
	}

	if !m.Activate {
		r.log.Info("Message %d saved", m.Number)
		return nil
	}
	return r.activate(ctx, v)
}

func (r *request) readBack(ctx context.Context, id int) (validation, error) {
	vbs, err := r.get(ctx,
		ntcip.Message(ntcip.MessageMemoryType, changeable, id),
		ntcip.Message(ntcip.MessageNumber, changeable, id),
		ntcip.Message(ntcip.MessageCRC, changeable, id),
		ntcip.Message(ntcip.MessageMulti, changeable, id),
		ntcip.Message(ntcip.MessageOwner, changeable, id),
		ntcip.Message(ntcip.MessageStatus, changeable, id),
		ntcip.ValidateMessageError,
		ntcip.MultiSyntaxError,
		ntcip.MultiSyntaxErrorPos,
	)
	if err != nil {
		return validation{}, err
	}

	v := validation{
		memType:  vbs[0].Int(),
		number:   vbs[1].Int(),
		crc:      vbs[2].Int(),
		multi:    vbs[3].String(),
		owner:    vbs[4].String(),
		status:   types.ParseMessageStatus(vbs[5].Int()),
		validate: vbs[6].Int(),
		syntax:   vbs[7].Int(),
		position: vbs[8].Int(),
	}
	r.log.Debug("Read back message %d: memory type %d, crc %d, status %s, validate %d, syntax %d at %d",
		v.number, v.memType, v.crc, v.status, v.validate, v.syntax, v.position)
	return v, nil
}

func (r *request) checkValidation(v validation) error {
	kind, ok := validationKind(v.validate, v.syntax)
	if kind == OK {
		return nil
	}
	err := fmt.Errorf("validate error %d, syntax error %d at position %d", v.validate, v.syntax, v.position)
	if !ok {
		r.log.Error("Unmapped validation result for message %d: %v", v.number, err)
	}
	return r.fail(kind, err)
}

func (r *request) activate(ctx context.Context, v validation) error {
	frame := ntcip.ActivationFrame(types.MemoryType(v.memType), v.number, v.crc, r.addr)
	r.log.Debug("Activating message %d with code % X", v.number, frame)
	if err := r.set(ctx, ntcip.Octets(ntcip.ActivateMessage, frame)); err != nil {
		return err
	}
	r.log.Info("Message %d activated", v.number)
	return nil
}
