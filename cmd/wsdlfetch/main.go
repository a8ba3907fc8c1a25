// Command wsdlfetch downloads a WSDL document and every WSDL and XML
// Schema document it imports, for offline use.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/CognitoIQ/wsdlfetch/internal/commandline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commandline.New().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
