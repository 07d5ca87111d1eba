package forms

// Form definitions for the authentication and account screens. Field names
// and messages match the dashboard's inline error copy.

var emailProp = map[string]any{
	"type":   "string",
	"format": "email",
}

func LoginForm() *Form {
	return New(map[string]any{
		"type":     "object",
		"required": []string{"email", "password"},
		"properties": map[string]any{
			"email":    emailProp,
			"password": map[string]any{"type": "string", "minLength": 1},
		},
	})
}

func ForgotPasswordForm() *Form {
	return New(map[string]any{
		"type":     "object",
		"required": []string{"email"},
		"properties": map[string]any{
			"email": emailProp,
		},
	})
}

func VerifyOTPForm() *Form {
	return New(map[string]any{
		"type":     "object",
		"required": []string{"email", "otp"},
		"properties": map[string]any{
			"email": emailProp,
			"otp": map[string]any{
				"type":    "string",
				"pattern": "^[0-9]{6}$",
			},
		},
	})
}

func ResetPasswordForm() *Form {
	return New(map[string]any{
		"type":     "object",
		"required": []string{"email", "newPassword", "confirmPassword"},
		"properties": map[string]any{
			"email":           emailProp,
			"newPassword":     map[string]any{"type": "string", "minLength": 6},
			"confirmPassword": map[string]any{"type": "string", "minLength": 1},
		},
	},
		MatchField("confirmPassword", "newPassword", "Passwords do not match"),
	)
}

func ChangePasswordForm() *Form {
	return New(map[string]any{
		"type":     "object",
		"required": []string{"oldPassword", "newPassword", "confirmPassword"},
		"properties": map[string]any{
			"oldPassword":     map[string]any{"type": "string", "minLength": 1},
			"newPassword":     map[string]any{"type": "string", "minLength": 6},
			"confirmPassword": map[string]any{"type": "string", "minLength": 1},
		},
	},
		MatchField("confirmPassword", "newPassword", "Passwords do not match"),
	)
}
