package commands

import (
	"fmt"

	"go-candidate-backend/docs"

	"github.com/spf13/cobra"
	"github.com/swaggo/swag"
)

// openapiCmd prints the registered swagger document
var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI (Swagger 2.0) document",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), doc)
		return nil
	},
}
