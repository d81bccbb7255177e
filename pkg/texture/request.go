package texture

import "fmt"

// Request selects the single operation run on a buffer.
type Request interface {
	Operation() string
	isRequest()
}

// InvertChannelsRequest inverts the channels in Mask. A zero Mask means every
// non-alpha channel of the input.
type InvertChannelsRequest struct {
	Mask ChannelMask
	op   string
}

func (r InvertChannelsRequest) Operation() string {
	if r.op == "" {
		return OpInvertChannels
	}
	return r.op
}

func (InvertChannelsRequest) isRequest() {}

// ConvertHandedness flips a normal map between DirectX and OpenGL.
func ConvertHandedness() InvertChannelsRequest {
	return InvertChannelsRequest{Mask: MaskG, op: OpConvertHandedness}
}

// InvertDisplacement inverts every colour channel of a displacement map.
func InvertDisplacement() InvertChannelsRequest {
	return InvertChannelsRequest{op: OpInvertDisplacement}
}

// RemoveAlphaRequest flattens alpha against Background.
type RemoveAlphaRequest struct {
	Background Color
}

func (RemoveAlphaRequest) Operation() string { return OpRemoveAlpha }
func (RemoveAlphaRequest) isRequest()        {}

// ClassifyHandednessRequest classifies a normal map against Threshold. A zero
// Threshold is used as-is; pass DefaultThreshold for the usual midpoint.
type ClassifyHandednessRequest struct {
	Threshold float64
}

func (ClassifyHandednessRequest) Operation() string { return OpClassifyHandedness }
func (ClassifyHandednessRequest) isRequest()        {}

// Result carries the output of Apply: a new buffer for transforms or a
// classification for report-only operations.
type Result struct {
	Buffer         *Buffer
	Classification *Classification
}

// Apply validates b against the operation's accepted modes and runs req.
// b is never modified; on error the returned Result is empty.
func Apply(b *Buffer, req Request) (Result, error) {
	if req == nil {
		return Result{}, fmt.Errorf("%w: nil request", ErrInvalidArgument)
	}
	spec, ok := LookupOperation(req.Operation())
	if !ok {
		return Result{}, fmt.Errorf("%w: unknown operation %q", ErrInvalidArgument, req.Operation())
	}
	if err := Validate(b, spec.Accepts...); err != nil {
		return Result{}, fmt.Errorf("%s: %w", spec.Name, err)
	}

	switch r := req.(type) {
	case InvertChannelsRequest:
		mask := r.Mask
		if mask == 0 {
			m, err := ColorMask(b.Mode)
			if err != nil {
				return Result{}, err
			}
			mask = m
		}
		out, err := Invert(b, mask)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", spec.Name, err)
		}
		return Result{Buffer: out}, nil

	case RemoveAlphaRequest:
		out, err := RemoveAlpha(b, r.Background)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", spec.Name, err)
		}
		return Result{Buffer: out}, nil

	case ClassifyHandednessRequest:
		c, err := Classify(b, r.Threshold)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", spec.Name, err)
		}
		return Result{Classification: &c}, nil

	default:
		return Result{}, fmt.Errorf("%w: unsupported request %T", ErrInvalidArgument, req)
	}
}
