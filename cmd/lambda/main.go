package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	fiberadapter "github.com/awslabs/aws-lambda-go-api-proxy/fiber"

	"github.com/play2earn/backend/pkg/bootstrap"
)

var fiberLambda *fiberadapter.FiberLambda

// Handler serves one API Gateway proxy event.
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return fiberLambda.ProxyWithContext(ctx, req)
}

func main() {
	// one build per cold start; warm invocations reuse the app and its connections
	app, err := bootstrap.FromEnv(context.Background())
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	fiberLambda = fiberadapter.New(app.Fiber)

	lambda.Start(Handler)
}
