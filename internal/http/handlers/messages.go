package handlers

var catalog = map[string]map[string]string{
	"en": {
		"validation":               "The submitted data is invalid.",
		"not_found":                "The requested resource was not found.",
		"conflict":                 "The resource already exists.",
		"invalid_state_transition": "This donation has already been settled.",
		"unauthorized":             "Please sign in.",
		"unexpected":               "Something went wrong. Please try again.",
		"bad_request":              "The request body is not valid JSON.",
		"empty_body":               "The request body is empty.",
		"gateway_forbidden":        "Gateway credentials are invalid.",
		"unknown_gateway":          "Unknown payment method.",
		"conflict_email":           "This email is already registered.",
		"conflict_username":        "This username is already taken.",
		"conflict_idempotencyKey":  "This idempotency key was already used for a different donation.",
		"account_created":          "Account created.",
	},
	"th": {
		"validation":               "ข้อมูลไม่ถูกต้อง",
		"not_found":                "ไม่พบข้อมูลที่ต้องการ",
		"conflict":                 "ข้อมูลนี้มีอยู่แล้ว",
		"invalid_state_transition": "รายการบริจาคนี้ดำเนินการเสร็จสิ้นแล้ว",
		"unauthorized":             "กรุณาเข้าสู่ระบบ",
		"unexpected":               "เกิดข้อผิดพลาด กรุณาลองใหม่อีกครั้ง",
		"bad_request":              "รูปแบบข้อมูลไม่ถูกต้อง",
		"empty_body":               "ไม่มีข้อมูลในคำขอ",
		"gateway_forbidden":        "ข้อมูลยืนยันช่องทางชำระเงินไม่ถูกต้อง",
		"unknown_gateway":          "ไม่รองรับช่องทางชำระเงินนี้",
		"conflict_email":           "อีเมลนี้มีผู้ใช้งานแล้ว",
		"conflict_username":        "Username นี้มีผู้ใช้งานแล้ว",
		"conflict_idempotencyKey":  "Idempotency-Key นี้ถูกใช้กับรายการบริจาคอื่นแล้ว",
		"account_created":          "สมัครสมาชิกสำเร็จ",
	},
}

// message looks key up for locale, falling back to English.
func message(locale, key string) string {
	if msgs, ok := catalog[locale]; ok {
		if m, ok := msgs[key]; ok {
			return m
		}
	}
	if m, ok := catalog["en"][key]; ok {
		return m
	}
	return key
}

func conflictMessage(locale, field string) string {
	switch field {
	case "email", "username", "idempotencyKey":
		return message(locale, "conflict_"+field)
	}
	return message(locale, "conflict")
}
