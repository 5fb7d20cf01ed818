package i18n

var arabic = map[string]string{
	PageTitle:         "نموذج زيارة تاجر السيارات",
	FormTitle:         "🚗 نموذج زيارة تجار",
	VisitDate:         "تاريخ الزيارة: %s",
	Submit:            "تقديم النموذج",
	Submitted:         "تم تقديم النموذج بنجاح!",
	SubmitFailed:      "خطأ في تقديم النموذج: %s",
	MissingFields:     "يرجى تعبئة الحقول المطلوبة: %s",
	InvalidFields:     "قيم غير صالحة في الحقول: %s",
	NoDealers:         "لا توجد بيانات متاحة للتجار. يرجى التحقق من جدول Google الخاص بك.",
	DealersLoadFailed: "خطأ في تحميل بيانات التجار: %s",
	NoCredentials:     "لم يتم العثور على بيانات اعتماد للوصول إلى قاعدة البيانات",
	OptionYes:         "نعم",
	OptionNo:          "لا",
	ChooseOption:      "اختر...",
	SectionGeneral:    "بيانات عامة",
	SectionDiscussion: "نقاط الحوار الرئيسية",
	SectionActions:    "نتائج قابلة للتنفيذ",
	SectionEvaluation: "تقييم الزيارة",
	SectionFollowUp:   "خطة المتابعة",

	FieldPrefix + "dealer_code":          "اسم المعرض",
	FieldPrefix + "dealer_spoc":          "اسم التاجر",
	FieldPrefix + "visit_type":           "نوع الزيارة",
	FieldPrefix + "visitor":              "تمت الزيارة بواسطة",
	FieldPrefix + "app_overview":         "أداء التطبيق بشكل عام",
	FieldPrefix + "flash_sale":           "شراء السيارات في ال ٧٢ ساعة",
	FieldPrefix + "showroom_performance": "العرض في المعرض",
	FieldPrefix + "swift_adoption":       "تمويل Swift للعملاء",
	FieldPrefix + "direct_lending":       "الإقراض المباشر Direct Lending",
	FieldPrefix + "car_sharing":          "مشاركة العربيات من الابليكشن للعملاء",
	FieldPrefix + "d2c_adoption":         "موقع الاجانص D2C",
	FieldPrefix + "positive_feedback":    "اكتر حاجة ايجابية في الاجانص",
	FieldPrefix + "negative_feedback":    "اكتر حاجة سلبية في الاجانص",
	FieldPrefix + "next_actions":         "الإجراء المتفق عليه",
	FieldPrefix + "action_owner":         "مسؤول التنفيذ",
	FieldPrefix + "action_date":          "الموعد المستهدف",
	FieldPrefix + "interested":           "مدى تفاعل التاجر",
	FieldPrefix + "benefit_of_visit":     "الاستفادة من الزيارة",
	FieldPrefix + "next_visit_date":      "تاريخ الزيارة القادمة",
	FieldPrefix + "preferred_channel":    "قناة التواصل المفضلة",
	FieldPrefix + "problems":             "المشاكل التي تواجه التاجر",
	FieldPrefix + "suggestions":          "اقتراحات التاجر",
	FieldPrefix + "topics":               "موضوعات النقاش",
	FieldPrefix + "stock_count":          "عدد السيارات المعروضة",
	FieldPrefix + "reference_link":       "رابط مرجعي",
	FieldPrefix + "uses_app":             "هل يستخدم التاجر التطبيق؟",
}

var english = map[string]string{
	PageTitle:         "Car dealer visit form",
	FormTitle:         "🚗 Dealer visit form",
	VisitDate:         "Visit date: %s",
	Submit:            "Submit",
	Submitted:         "Form submitted successfully!",
	SubmitFailed:      "Error submitting the form: %s",
	MissingFields:     "Please fill in the required fields: %s",
	InvalidFields:     "Invalid values in fields: %s",
	NoDealers:         "No dealer data available. Please check the dealers table.",
	DealersLoadFailed: "Error loading dealer data: %s",
	NoCredentials:     "No credentials found for backend access",
	OptionYes:         "Yes",
	OptionNo:          "No",
	ChooseOption:      "Choose...",
	SectionGeneral:    "General information",
	SectionDiscussion: "Main discussion points",
	SectionActions:    "Actionable results",
	SectionEvaluation: "Visit evaluation",
	SectionFollowUp:   "Follow-up plan",

	FieldPrefix + "dealer_code":          "Showroom",
	FieldPrefix + "dealer_spoc":          "Dealer contact",
	FieldPrefix + "visit_type":           "Visit type",
	FieldPrefix + "visitor":              "Visited by",
	FieldPrefix + "app_overview":         "Overall app performance",
	FieldPrefix + "flash_sale":           "72-hour car purchases",
	FieldPrefix + "showroom_performance": "Showroom display",
	FieldPrefix + "swift_adoption":       "Swift customer financing",
	FieldPrefix + "direct_lending":       "Direct lending",
	FieldPrefix + "car_sharing":          "Sharing cars from the app with customers",
	FieldPrefix + "d2c_adoption":         "D2C website",
	FieldPrefix + "positive_feedback":    "Most positive point",
	FieldPrefix + "negative_feedback":    "Most negative point",
	FieldPrefix + "next_actions":         "Agreed action",
	FieldPrefix + "action_owner":         "Action owner",
	FieldPrefix + "action_date":          "Target date",
	FieldPrefix + "interested":           "Dealer engagement",
	FieldPrefix + "benefit_of_visit":     "Benefit of the visit",
	FieldPrefix + "next_visit_date":      "Next visit date",
	FieldPrefix + "preferred_channel":    "Preferred channel",
	FieldPrefix + "problems":             "Problems the dealer faces",
	FieldPrefix + "suggestions":          "Dealer suggestions",
	FieldPrefix + "topics":               "Topics discussed",
	FieldPrefix + "stock_count":          "Cars on display",
	FieldPrefix + "reference_link":       "Reference link",
	FieldPrefix + "uses_app":             "Does the dealer use the app?",
}
