package models

// WorkflowTemplate is a seedable workflow definition offered in the portal UI.
type WorkflowTemplate struct {
	Key         string                 `json:"key"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Trigger     WorkflowTrigger        `json:"trigger"`
	Conditions  []WorkflowCondition    `json:"conditions"`
	Actions     []WorkflowActionConfig `json:"actions"`
}

// BuiltinTemplates are the stock automations shipped with the portal. Display
// strings are Turkish to match the rest of the product.
var BuiltinTemplates = []WorkflowTemplate{
	{
		Key:         "beneficiary_welcome",
		Name:        "Yeni İhtiyaç Sahibi Karşılama",
		Description: "Yeni ihtiyaç sahibi kaydında otomatik görev oluştur",
		Trigger:     TriggerBeneficiaryCreated,
		Conditions: []WorkflowCondition{
			{Field: "status", Operator: OperatorEquals, Value: "AKTIF"},
		},
		Actions: []WorkflowActionConfig{
			{Type: "create_task", Parameters: map[string]any{
				"title":       "Yeni İhtiyaç Sahibini Görüşme",
				"description": "Kayıt sonrası görüşme planla",
				"priority":    "normal",
			}},
			{Type: "send_notification", Parameters: map[string]any{
				"type":    "beneficiary_registered",
				"title":   "Yeni İhtiyaç Sahibi",
				"message": "Yeni bir ihtiyaç sahibi kaydoldu",
			}},
		},
	},
	{
		Key:         "donation_receipt",
		Name:        "Bağış Makbuzu Gönder",
		Description: "Bağış alındığında otomatik teşekkür mesajı gönder",
		Trigger:     TriggerDonationReceived,
		Conditions: []WorkflowCondition{
			{Field: "status", Operator: OperatorEquals, Value: "completed"},
		},
		Actions: []WorkflowActionConfig{
			{Type: "send_email", Parameters: map[string]any{
				"to":       "{{donor_email}}",
				"subject":  "Bağışınız İçin Teşekkürler",
				"template": "donation_receipt",
			}},
			{Type: "create_task", Parameters: map[string]any{
				"title":       "Bağış Takibi",
				"description": "Bağış sonrası takip işlemlerini yap",
				"priority":    "low",
			}},
		},
	},
	{
		Key:         "task_deadline_reminder",
		Name:        "Görev Son Gün Hatırlatması",
		Description: "Görev son günü yaklaştığında hatırlatma gönder",
		Trigger:     TriggerDeadlineApproaching,
		Conditions: []WorkflowCondition{
			{Field: "days_until_due", Operator: OperatorLessThan, Value: 2},
		},
		Actions: []WorkflowActionConfig{
			{Type: "send_notification", Parameters: map[string]any{
				"type":    "deadline_reminder",
				"title":   "Görev Son Günü Yaklaşıyor",
				"message": "Görevin son günü yaklaşıyor",
			}},
			{Type: "send_email", Parameters: map[string]any{
				"to":       "{{assignee_email}}",
				"subject":  "Görev Hatırlatması",
				"template": "task_reminder",
			}},
		},
	},
	{
		Key:         "aid_application_review",
		Name:        "Yardım Başvurusu Değerlendirme",
		Description: "Yeni yardım başvurusu için değerlendirme görevi oluştur",
		Trigger:     TriggerAidApplicationSubmitted,
		Conditions: []WorkflowCondition{
			{Field: "stage", Operator: OperatorEquals, Value: "draft"},
		},
		Actions: []WorkflowActionConfig{
			{Type: "create_task", Parameters: map[string]any{
				"title":       "Yardım Başvurusu Değerlendir",
				"description": "Yardım başvurusunu incele ve karar ver",
				"priority":    "high",
			}},
			{Type: "move_to_stage", Parameters: map[string]any{
				"stage": "under_review",
			}},
			{Type: "send_notification", Parameters: map[string]any{
				"type":    "aid_application",
				"title":   "Yeni Yardım Başvurusu",
				"message": "Yeni bir yardım başvurusu değerlendirme bekliyor",
			}},
		},
	},
}
