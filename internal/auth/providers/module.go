package providers

import "go.uber.org/fx"

// Module provides the identity provider
var Module = fx.Module("providers",
	fx.Provide(
		fx.Annotate(
			NewLinkedInProvider,
			fx.As(new(Provider)),
		),
	),
)
