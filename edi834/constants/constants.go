package constants

const ImportInprog = "In-Progress"
const ImportComplete = "Completed"
const ImportFail = "Failed"

// Export formats accepted by the import command.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatDB   = "db"
)

const DefaultExportDir = "."

// This is set during compilation.
var Version = "latest"
