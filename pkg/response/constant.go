package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"

	InternalServerErrorCode = 500
)

const (
	DateFormat     = "01/02/2006"
	DateTimeFormat = "01/02/2006 15:04:05"
)
