package domain

// Messages shown to the shopper after a checkout attempt.
const (
	MessageEmptyCart = "Ajoute un produit au panier avant de confirmer."
	MessageConfirmed = "Merci ! Votre commande est enregistree. Paiement a la livraison."
	MessagePartial   = "Merci ! Votre commande est enregistree, mais une copie n'a peut-etre pas ete transmise. Paiement a la livraison."
	MessageFailed    = "Impossible d'envoyer la commande. Reessaie dans quelques instants."
)

// Outcome records the fate of one endpoint for one submission.
type Outcome struct {
	Endpoint  Endpoint
	Delivered bool
	Delivery  Delivery
	Err       error
}

// Status summarises a submission across all endpoints.
type Status string

const (
	StatusFailed   Status = "failed"
	StatusPartial  Status = "partial"
	StatusComplete Status = "complete"
)

// Result holds one outcome per configured endpoint, in configuration order.
type Result struct {
	SubmissionID string
	Outcomes     []Outcome
}

// Succeeded counts delivered outcomes.
func (r Result) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Delivered {
			n++
		}
	}
	return n
}

func (r Result) Status() Status {
	switch n := r.Succeeded(); {
	case n == 0:
		return StatusFailed
	case n < len(r.Outcomes):
		return StatusPartial
	default:
		return StatusComplete
	}
}

// Message is the notice matching the status.
func (r Result) Message() string {
	switch r.Status() {
	case StatusComplete:
		return MessageConfirmed
	case StatusPartial:
		return MessagePartial
	default:
		return MessageFailed
	}
}
