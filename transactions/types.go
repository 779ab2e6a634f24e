package transactions

import "strings"

// Type tags a recorded ledger write with the operation that caused it.
type Type int

const (
	Unknown Type = iota
	SubmitKYC
	VerifyKYC
	ApproveKYC
	RejectKYC
	CheckExpiry
	DeleteKYC
	AddCustomer
	AddBankEmployee
	AddAdmin
)

func (t Type) String() string {
	switch t {
	case SubmitKYC:
		return "SubmitKYC"
	case VerifyKYC:
		return "VerifyKYC"
	case ApproveKYC:
		return "ApproveKYC"
	case RejectKYC:
		return "RejectKYC"
	case CheckExpiry:
		return "CheckExpiry"
	case DeleteKYC:
		return "DeleteKYC"
	case AddCustomer:
		return "AddCustomer"
	case AddBankEmployee:
		return "AddBankEmployee"
	case AddAdmin:
		return "AddAdmin"
	default:
		return "Unknown"
	}
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	*t = TypeFromText(string(text))
	return nil
}

func TypeFromText(text string) Type {
	switch strings.ToLower(text) {
	default:
		return Unknown
	case "submitkyc":
		return SubmitKYC
	case "verifykyc":
		return VerifyKYC
	case "approvekyc":
		return ApproveKYC
	case "rejectkyc":
		return RejectKYC
	case "checkexpiry":
		return CheckExpiry
	case "deletekyc":
		return DeleteKYC
	case "addcustomer":
		return AddCustomer
	case "addbankemployee":
		return AddBankEmployee
	case "addadmin":
		return AddAdmin
	}
}
