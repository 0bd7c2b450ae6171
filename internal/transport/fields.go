package transport

import (
	"math"
	"strconv"
	"time"

	"github.com/holiman/uint256"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
	"github.com/goodnatureofminers/saleledger/pkg/safe"
)

// maxExactNumber is the largest integer a JSON number carries without loss.
const maxExactNumber = 1 << 53

func optionalString(req *structpb.Struct, name string) (string, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return "", nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue, nil
	case *structpb.Value_NullValue:
		return "", nil
	default:
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", name)
	}
}

func accountField(req *structpb.Struct, name string) (model.Account, error) {
	s, err := optionalString(req, name)
	if err != nil {
		return "", err
	}
	account := model.Account(s).Normalize()
	if account.IsZero() {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	return account, nil
}

// amountField accepts a decimal or exponent string, or a JSON number small
// enough to be exact.
func amountField(req *structpb.Struct, name string) (*uint256.Int, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	var text string
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		text = kind.StringValue
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n < 0 || n > maxExactNumber || n != math.Trunc(n) {
			return nil, status.Errorf(codes.InvalidArgument, "%s must be a non-negative integer below 2^53, pass larger amounts as strings", name)
		}
		text = strconv.FormatFloat(n, 'f', 0, 64)
	default:
		return nil, status.Errorf(codes.InvalidArgument, "%s must be a string or number", name)
	}
	amount, err := safe.ParseAmount(text)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s: %v", name, err)
	}
	return amount, nil
}

func intField(req *structpb.Struct, name string, def int) (int, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return def, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", name)
	}
	return int(n.NumberValue), nil
}

func amountValue(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

func timeValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return s, nil
}
