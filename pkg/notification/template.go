package notification

import (
	"fmt"
	"io"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Template is the reusable content definition for one event type. Title
// and Message may contain {name} placeholders filled at resolve time.
type Template struct {
	Type          Type          `yaml:"type"`
	Title         string        `yaml:"title"`
	Message       string        `yaml:"message"`
	Priority      Priority      `yaml:"priority"`
	Channels      []Channel     `yaml:"channels"`
	RecipientRole string        `yaml:"recipient_role,omitempty"`
	RecipientType RecipientType `yaml:"recipient_type,omitempty"`
}

// TemplateSet maps event keys to their templates.
type TemplateSet map[string]Template

// LoadTemplates decodes a YAML template catalogue, typically used to
// override or extend DefaultTemplates from a config file.
func LoadTemplates(r io.Reader) (TemplateSet, error) {
	var set TemplateSet
	if err := yaml.NewDecoder(r).Decode(&set); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}
	return set, nil
}

// ResolvedTemplate is template content with placeholders substituted,
// ready to be dispatched.
type ResolvedTemplate struct {
	Type          Type
	Title         string
	Message       string
	Priority      Priority
	Channels      []Channel
	RecipientRole string
	RecipientType RecipientType
}

// TemplateResolver resolves event keys into notification content. The
// template set is copied at construction and never mutated afterwards,
// so a resolver is safe for concurrent use.
type TemplateResolver struct {
	templates TemplateSet
}

// NewTemplateResolver returns a resolver over a copy of the given set.
// A nil set resolves against DefaultTemplates.
func NewTemplateResolver(set TemplateSet) *TemplateResolver {
	if set == nil {
		set = DefaultTemplates()
	}
	copied := make(TemplateSet, len(set))
	for k, v := range set {
		copied[k] = v
	}
	return &TemplateResolver{templates: copied}
}

// Resolve looks up the template for eventKey and substitutes {name}
// placeholders from data. Placeholders with no matching key are left
// verbatim so missing data is visible rather than silently blanked.
// Returns ErrUnknownEventType when the key has no template.
func (r *TemplateResolver) Resolve(eventKey string, data map[string]string) (ResolvedTemplate, error) {
	tmpl, ok := r.templates[eventKey]
	if !ok {
		return ResolvedTemplate{}, fmt.Errorf("%w: %s", ErrUnknownEventType, eventKey)
	}
	return ResolvedTemplate{
		Type:          tmpl.Type,
		Title:         interpolate(tmpl.Title, data),
		Message:       interpolate(tmpl.Message, data),
		Priority:      tmpl.Priority,
		Channels:      append([]Channel(nil), tmpl.Channels...),
		RecipientRole: tmpl.RecipientRole,
		RecipientType: tmpl.RecipientType,
	}, nil
}

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

func interpolate(s string, data map[string]string) string {
	if len(data) == 0 {
		return s
	}
	return placeholderRe.ReplaceAllStringFunc(s, func(match string) string {
		key := match[1 : len(match)-1]
		if val, ok := data[key]; ok {
			return val
		}
		return match
	})
}

// DefaultTemplates returns the built-in catalogue covering the standard
// certification workflow events.
func DefaultTemplates() TemplateSet {
	return TemplateSet{
		"farm.approved": {
			Type:     TypeFarmApproved,
			Title:    "Farm Approved",
			Message:  "Your farm {farmName} has been approved for GACP certification.",
			Priority: PriorityHigh,
			Channels: []Channel{ChannelInApp, ChannelEmail},
		},
		"farm.rejected": {
			Type:     TypeFarmRejected,
			Title:    "Farm Application Rejected",
			Message:  "Your farm {farmName} application was rejected: {reason}",
			Priority: PriorityHigh,
			Channels: []Channel{ChannelInApp, ChannelEmail},
		},
		"farm.verification_required": {
			Type:     TypeFarmVerificationRequired,
			Title:    "Farm Verification Required",
			Message:  "Additional verification is required for farm {farmName}. Please review the requested documents.",
			Priority: PriorityMedium,
			Channels: []Channel{ChannelInApp, ChannelEmail},
		},
		"survey.submitted": {
			Type:     TypeSurveySubmitted,
			Title:    "Survey Submitted",
			Message:  "Survey for farm {farmName} has been submitted and is awaiting review.",
			Priority: PriorityMedium,
			Channels: []Channel{ChannelInApp},
		},
		"survey.approved": {
			Type:     TypeSurveyApproved,
			Title:    "Survey Approved",
			Message:  "Your survey for farm {farmName} has been approved.",
			Priority: PriorityMedium,
			Channels: []Channel{ChannelInApp, ChannelEmail},
		},
		"survey.rejected": {
			Type:     TypeSurveyRejected,
			Title:    "Survey Rejected",
			Message:  "Your survey for farm {farmName} was rejected: {reason}",
			Priority: PriorityHigh,
			Channels: []Channel{ChannelInApp, ChannelEmail},
		},
		"survey.revision_required": {
			Type:     TypeSurveyRevisionRequired,
			Title:    "Survey Revision Required",
			Message:  "Your survey for farm {farmName} needs revision: {reason}",
			Priority: PriorityMedium,
			Channels: []Channel{ChannelInApp, ChannelEmail},
		},
		"certificate.issued": {
			Type:     TypeCertificateIssued,
			Title:    "Certificate Issued",
			Message:  "Your GACP certificate {certificateNumber} has been issued and is valid until {expiryDate}.",
			Priority: PriorityHigh,
			Channels: []Channel{ChannelInApp, ChannelEmail},
		},
		"certificate.expiring": {
			Type:     TypeCertificateExpiring,
			Title:    "Certificate Expiring Soon",
			Message:  "Your certificate {certificateNumber} expires in {daysLeft} days. Renew it to keep your certification active.",
			Priority: PriorityUrgent,
			Channels: []Channel{ChannelInApp, ChannelEmail, ChannelSMS},
		},
		"certificate.expired": {
			Type:     TypeCertificateExpired,
			Title:    "Certificate Expired",
			Message:  "Your certificate {certificateNumber} has expired. Apply for renewal to restore your certification.",
			Priority: PriorityUrgent,
			Channels: []Channel{ChannelInApp, ChannelEmail, ChannelSMS},
		},
		"certificate.renewed": {
			Type:     TypeCertificateRenewed,
			Title:    "Certificate Renewed",
			Message:  "Your certificate has been renewed. New certificate number: {certificateNumber}.",
			Priority: PriorityHigh,
			Channels: []Channel{ChannelInApp, ChannelEmail},
		},
		"training.enrolled": {
			Type:     TypeTrainingEnrolled,
			Title:    "Training Enrollment Confirmed",
			Message:  "You are enrolled in {courseName}.",
			Priority: PriorityLow,
			Channels: []Channel{ChannelInApp},
		},
		"training.completed": {
			Type:     TypeTrainingCompleted,
			Title:    "Training Completed",
			Message:  "Congratulations, you completed {courseName} with a score of {score}%.",
			Priority: PriorityMedium,
			Channels: []Channel{ChannelInApp, ChannelEmail},
		},
		"training.failed": {
			Type:     TypeTrainingFailed,
			Title:    "Training Not Passed",
			Message:  "You did not pass {courseName}. You may retake the assessment.",
			Priority: PriorityMedium,
			Channels: []Channel{ChannelInApp},
		},
		"document.uploaded": {
			Type:          TypeDocumentUploaded,
			Title:         "New Document Uploaded",
			Message:       "{farmerName} uploaded a new document for farm {farmName}.",
			Priority:      PriorityLow,
			Channels:      []Channel{ChannelInApp},
			RecipientType: RecipientStaff,
		},
		"document.approved": {
			Type:     TypeDocumentApproved,
			Title:    "Document Approved",
			Message:  "Your document {documentName} has been approved.",
			Priority: PriorityLow,
			Channels: []Channel{ChannelInApp},
		},
		"document.rejected": {
			Type:     TypeDocumentRejected,
			Title:    "Document Rejected",
			Message:  "Your document {documentName} was rejected: {reason}",
			Priority: PriorityMedium,
			Channels: []Channel{ChannelInApp, ChannelEmail},
		},
		"payment.required": {
			Type:     TypePaymentRequired,
			Title:    "Payment Required",
			Message:  "A payment of {amount} THB is required for {description}.",
			Priority: PriorityHigh,
			Channels: []Channel{ChannelInApp, ChannelEmail},
		},
		"payment.confirmed": {
			Type:     TypePaymentConfirmed,
			Title:    "Payment Confirmed",
			Message:  "Your payment of {amount} THB for {description} has been confirmed.",
			Priority: PriorityMedium,
			Channels: []Channel{ChannelInApp, ChannelEmail},
		},
		"system.announcement": {
			Type:     TypeSystemAnnouncement,
			Title:    "Announcement",
			Message:  "{message}",
			Priority: PriorityMedium,
			Channels: []Channel{ChannelInApp},
		},
		"system.maintenance": {
			Type:     TypeSystemMaintenance,
			Title:    "Scheduled Maintenance",
			Message:  "The system will be unavailable from {startTime} to {endTime}.",
			Priority: PriorityMedium,
			Channels: []Channel{ChannelInApp},
		},
	}
}
