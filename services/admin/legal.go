package admin

import (
	"apnakam/models"
)

const legalUpdated = "2024-06-01"

// GetLegalSections returns all legal documents.
func (a *DefaultAdminService) GetLegalSections() []models.LegalSection {
	return []models.LegalSection{
		{
			ID:       "terms",
			Title:    "Terms & Conditions",
			Summary:  "These terms govern your use of the Apna Kam platform.",
			Content:  generateTerms(),
			Audience: models.AudienceBoth,
			Version:  "v1.0",
			Updated:  legalUpdated,
		},
		{
			ID:       "refund",
			Title:    "Cancellation & Refund Policy",
			Summary:  "How cancellations, refunds and the contact fee work.",
			Content:  generateRefundPolicy(),
			Audience: models.AudienceCustomer,
			Version:  "v1.0",
			Updated:  legalUpdated,
		},
		{
			ID:       "worker-conduct",
			Title:    "Worker Code of Conduct",
			Summary:  "Expectations for workers listed on Apna Kam.",
			Content:  generateWorkerConduct(),
			Audience: models.AudienceWorker,
			Version:  "v1.0",
			Updated:  legalUpdated,
		},
	}
}

// GetLegalSectionsFor returns legal documents relevant to the audience.
func (a *DefaultAdminService) GetLegalSectionsFor(audience string) []models.LegalSection {
	all := a.GetLegalSections()
	var filtered []models.LegalSection

	for _, section := range all {
		if section.Audience == models.AudienceBoth || section.Audience == audience {
			filtered = append(filtered, section)
		}
	}
	return filtered
}

func generateTerms() string {
	return `Apna Kam connects skilled workers with customers who need their services. By using the platform you accept these terms.

1. Accounts: Keep your profile accurate and current.
2. Marketplace: Apna Kam is not a party to agreements between customers and workers and does not employ workers.
3. Payments: Customers pay workers for booked services. Apna Kam charges a fee to reveal a worker's contact details.
4. Liability: Apna Kam is not liable for indirect or consequential losses arising from use of the service.
5. Governing law: These terms are governed by the laws of India.`
}

func generateRefundPolicy() string {
	return `1. Cancelling before the worker confirms: any amount paid is refunded in full.
2. Cancelling after confirmation: a small cancellation fee may apply.
3. Worker cancellations: we try to find a replacement, otherwise the booking amount is refunded.
4. Refunds reach the original payment method within 5-7 business days.
5. The contact reveal fee is non-refundable.
6. Disputes must be raised within 24 hours of service completion.`
}

func generateWorkerConduct() string {
	return `Workers listed on Apna Kam agree to:

- Respond to booking requests promptly.
- Arrive on the booked date or cancel in the app.
- Quote prices honestly and match their listed price type.
- Treat customers and their property with respect.

Frequent cancellations without reason may lead to removal from search.`
}
