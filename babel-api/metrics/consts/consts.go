package consts

const (
	BabelPromNamespace = "babel"
	TransactionProcess = "transaction_process"
)
