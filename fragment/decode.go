package fragment

// Decoder decodes a complete message buffer into a typed value M,
// returning any unconsumed remainder. It is the minimal contract
// DecodeMessage needs from a grammar-engine codec; the codec package's
// Codec handles satisfy it directly.
type Decoder[M any] interface {
	Decode(input []byte) (remainder []byte, message M, err error)
}

// DecodeMessageErrorKind discriminates why DecodeMessage failed.
type DecodeMessageErrorKind int

const (
	// DecodingFailure means the decoder itself rejected the bytes.
	DecodingFailure DecodeMessageErrorKind = iota
	// DecodingRemainder means decoding succeeded but did not consume
	// every byte of the message.
	DecodingRemainder
	// MessageTooLong means the Fragmentizer's size limit was exceeded
	// for this message and its buffered bytes are truncated.
	MessageTooLong
)

// DecodeMessageError reports why Fragmentizer-buffered message bytes
// could not be turned into a value of type M.
type DecodeMessageError[M any] struct {
	Kind      DecodeMessageErrorKind
	Err       error  // set for DecodingFailure
	Message   M      // set for DecodingRemainder: the value that did decode
	Remainder []byte // set for DecodingRemainder
	Initial   []byte // set for MessageTooLong: the truncated buffered prefix
}

func (e *DecodeMessageError[M]) Error() string {
	switch e.Kind {
	case DecodingFailure:
		return "fragment: decoding failed: " + e.Err.Error()
	case DecodingRemainder:
		return "fragment: decoding left unused bytes"
	case MessageTooLong:
		return "fragment: message exceeds the configured maximum size"
	}
	return "fragment: decode error"
}

// DecodeMessage decodes the Fragmentizer's current message with codec.
// Call it once IsMessageComplete returns true; which Decoder to use
// depends on the state of the IMAP conversation, which is the caller's
// responsibility to track.
func DecodeMessage[M any](f *Fragmentizer, codec Decoder[M]) (M, error) {
	var zero M
	if f.sizeExceeded {
		return zero, &DecodeMessageError[M]{Kind: MessageTooLong, Initial: f.messageBuffer}
	}

	remainder, message, err := codec.Decode(f.messageBuffer)
	if err != nil {
		return zero, &DecodeMessageError[M]{Kind: DecodingFailure, Err: err}
	}

	if len(remainder) != 0 {
		return zero, &DecodeMessageError[M]{Kind: DecodingRemainder, Message: message, Remainder: remainder}
	}

	return message, nil
}
