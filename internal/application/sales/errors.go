package sales

// Pasos de la transacción de venta, usados en TransactionError.Step.
const (
	StepBegin        = "begin"
	StepCreateSale   = "create_sale"
	StepCreateDetail = "create_detail"
	StepUpdateTotal  = "update_total"
	StepCommit       = "commit"
)

// TransactionError indica que la escritura atómica de una venta falló y fue revertida.
// Error() devuelve la descripción del error subyacente sin modificar.
type TransactionError struct {
	Step string
	Err  error
}

func (e *TransactionError) Error() string { return e.Err.Error() }

func (e *TransactionError) Unwrap() error { return e.Err }
