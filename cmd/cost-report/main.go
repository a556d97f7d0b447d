package main

import (
	"os"
	_ "time/tzdata"

	"github.com/alexlux58/AWS-ALERTING/internal/adapter/driving/handler"
	"github.com/alexlux58/AWS-ALERTING/pkg/console"
	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	h := handler.NewReportHandler(console.NewStructuredConsole(os.Stdout))
	lambda.Start(h.Handle)
}
