package main

import (
	"os"

	"github.com/alexlux58/AWS-ALERTING/internal/adapter/driving/handler"
	"github.com/alexlux58/AWS-ALERTING/pkg/console"
	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	h := handler.NewRemediationHandler(console.NewStructuredConsole(os.Stdout))
	lambda.Start(h.Handle)
}
