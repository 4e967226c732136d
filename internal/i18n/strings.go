package i18n

type Key string

const (
	AppTitle            Key = "app_title"
	AppCaption          Key = "app_caption"
	Welcome             Key = "welcome"
	InputPlaceholder    Key = "input_placeholder"
	QuestionPlaceholder Key = "question_placeholder"
	Analyzing           Key = "analyzing"
	Generating          Key = "generating"
	PredictedOutcome    Key = "predicted_outcome"
	ModelExplanation    Key = "model_explanation"
	Confidence          Key = "confidence"
	LabelAppealAllowed  Key = "label_appeal_allowed"
	LabelAppealDismiss  Key = "label_appeal_dismissed"
	UploadDocument      Key = "upload_document"
	NewChat             Key = "new_chat"
	ChatHistory         Key = "chat_history"
	Login               Key = "login"
	Register            Key = "register"
	Logout              Key = "logout"
	Username            Key = "username"
	Password            Key = "password"
	Language            Key = "language"
	Disclaimer          Key = "disclaimer"

	SectionFacts         Key = "section_facts"
	SectionAnalysis      Key = "section_analysis"
	SectionConclusion    Key = "section_conclusion"
	SectionUnderstanding Key = "section_understanding"
	SectionSteps         Key = "section_steps"
	SectionLaws          Key = "section_laws"
	SectionContacts      Key = "section_contacts"

	ErrInvalidRequest      Key = "err_invalid_request"
	ErrUnauthorized        Key = "err_unauthorized"
	ErrInvalidCredentials  Key = "err_invalid_credentials"
	ErrDuplicateUser       Key = "err_duplicate_user"
	ErrWeakCredentials     Key = "err_weak_credentials"
	ErrSessionNotFound     Key = "err_session_not_found"
	ErrJobNotFound         Key = "err_job_not_found"
	ErrDocumentNotFound    Key = "err_document_not_found"
	ErrModelNotLoaded      Key = "err_model_not_loaded"
	ErrEmptyCaseText       Key = "err_empty_case_text"
	ErrOCRUnavailable      Key = "err_ocr_unavailable"
	ErrUnsupportedFormat   Key = "err_unsupported_format"
	ErrUnreadableDocument  Key = "err_unreadable_document"
	ErrFileTooLarge        Key = "err_file_too_large"
	ErrGeneration          Key = "err_generation"
	ErrDatabaseUnavailable Key = "err_database_unavailable"
	ErrInternal            Key = "err_internal"
	ErrEnqueue             Key = "err_enqueue"
	ErrNotFound            Key = "err_not_found"
	ErrMethodNotAllowed    Key = "err_method_not_allowed"
)

// English is the complete table; other languages may omit keys and fall back.
var tables = map[Lang]map[Key]string{
	English: {
		AppTitle:            "Legal Case Outcome Predictor",
		AppCaption:          "Predict likely case outcomes and get plain-language legal guidance",
		Welcome:             "Welcome! Please describe the core facts of your court case for a predicted outcome and explanation.",
		InputPlaceholder:    "Enter the case facts here...",
		QuestionPlaceholder: "Ask a legal question...",
		Analyzing:           "Analyzing case facts...",
		Generating:          "Preparing explanation...",
		PredictedOutcome:    "Predicted Outcome",
		ModelExplanation:    "Model Explanation",
		Confidence:          "Confidence",
		LabelAppealAllowed:  "Appeal Allowed",
		LabelAppealDismiss:  "Appeal Dismissed",
		UploadDocument:      "Upload a case document (PDF or image)",
		NewChat:             "New chat",
		ChatHistory:         "Chat history",
		Login:               "Log in",
		Register:            "Register",
		Logout:              "Log out",
		Username:            "Username",
		Password:            "Password",
		Language:            "Language",
		Disclaimer:          "Disclaimer: This information is for general guidance only and must not be treated as legal advice. Please consult a qualified lawyer about your case.",

		SectionFacts:         "Factual Background",
		SectionAnalysis:      "Legal Analysis",
		SectionConclusion:    "Conclusion",
		SectionUnderstanding: "Understanding Your Situation",
		SectionSteps:         "Steps You Can Take",
		SectionLaws:          "Relevant Laws",
		SectionContacts:      "Helpful Contacts",

		ErrInvalidRequest:      "The request is invalid.",
		ErrUnauthorized:        "Please log in to continue.",
		ErrInvalidCredentials:  "Invalid username or password.",
		ErrDuplicateUser:       "This username is already taken.",
		ErrWeakCredentials:     "Username must be 3-50 characters (letters, digits, . _ -) and password at least 6 characters.",
		ErrSessionNotFound:     "Chat session not found.",
		ErrJobNotFound:         "Job not found.",
		ErrDocumentNotFound:    "Document not found.",
		ErrModelNotLoaded:      "The prediction model is not loaded. Predictions are disabled.",
		ErrEmptyCaseText:       "No case text was provided or could be extracted from the document.",
		ErrOCRUnavailable:      "Text recognition (OCR) is not available on this server.",
		ErrUnsupportedFormat:   "This file format is not supported. Upload a PDF, DOCX, HTML, text or image file.",
		ErrUnreadableDocument:  "The file could not be read. It may be damaged or password protected; try exporting it again.",
		ErrFileTooLarge:        "The uploaded file is too large.",
		ErrGeneration:          "The AI service could not generate a response. Please try again.",
		ErrDatabaseUnavailable: "The database is unavailable. Chat history is disabled.",
		ErrInternal:            "Something went wrong. Please try again.",
		ErrEnqueue:             "Could not queue the request. Please try again.",
		ErrNotFound:            "Not found.",
		ErrMethodNotAllowed:    "Method not allowed.",
	},
	Hindi: {
		AppTitle:            "कानूनी मामला परिणाम पूर्वानुमानक",
		AppCaption:          "संभावित मामले के परिणाम जानें और सरल भाषा में कानूनी मार्गदर्शन पाएँ",
		Welcome:             "स्वागत है! अनुमानित परिणाम और स्पष्टीकरण के लिए कृपया अपने अदालती मामले के मुख्य तथ्य बताएँ।",
		InputPlaceholder:    "मामले के तथ्य यहाँ लिखें...",
		QuestionPlaceholder: "कोई कानूनी प्रश्न पूछें...",
		Analyzing:           "मामले के तथ्यों का विश्लेषण हो रहा है...",
		Generating:          "स्पष्टीकरण तैयार किया जा रहा है...",
		PredictedOutcome:    "अनुमानित परिणाम",
		ModelExplanation:    "मॉडल स्पष्टीकरण",
		Confidence:          "विश्वास स्तर",
		LabelAppealAllowed:  "अपील स्वीकार",
		LabelAppealDismiss:  "अपील खारिज",
		UploadDocument:      "मामले का दस्तावेज़ अपलोड करें (PDF या चित्र)",
		NewChat:             "नई चैट",
		ChatHistory:         "चैट इतिहास",
		Login:               "लॉग इन",
		Register:            "पंजीकरण",
		Logout:              "लॉग आउट",
		Username:            "उपयोगकर्ता नाम",
		Password:            "पासवर्ड",
		Language:            "भाषा",
		Disclaimer:          "अस्वीकरण: यह जानकारी केवल सामान्य मार्गदर्शन के लिए है और इसे कानूनी सलाह नहीं माना जाना चाहिए। अपने मामले के लिए किसी योग्य वकील से परामर्श करें।",

		SectionFacts:         "तथ्यात्मक पृष्ठभूमि",
		SectionAnalysis:      "कानूनी विश्लेषण",
		SectionConclusion:    "निष्कर्ष",
		SectionUnderstanding: "आपकी स्थिति की समझ",
		SectionSteps:         "आप क्या कदम उठा सकते हैं",
		SectionLaws:          "संबंधित कानून",
		SectionContacts:      "सहायक संपर्क",

		ErrInvalidRequest:      "अनुरोध अमान्य है।",
		ErrUnauthorized:        "जारी रखने के लिए कृपया लॉग इन करें।",
		ErrInvalidCredentials:  "अमान्य उपयोगकर्ता नाम या पासवर्ड।",
		ErrDuplicateUser:       "यह उपयोगकर्ता नाम पहले से लिया जा चुका है।",
		ErrWeakCredentials:     "उपयोगकर्ता नाम 3-50 अक्षरों का (अक्षर, अंक, . _ -) और पासवर्ड कम से कम 6 अक्षरों का होना चाहिए।",
		ErrSessionNotFound:     "चैट सत्र नहीं मिला।",
		ErrJobNotFound:         "कार्य नहीं मिला।",
		ErrDocumentNotFound:    "दस्तावेज़ नहीं मिला।",
		ErrModelNotLoaded:      "पूर्वानुमान मॉडल लोड नहीं है। पूर्वानुमान अक्षम हैं।",
		ErrEmptyCaseText:       "मामले का कोई पाठ नहीं दिया गया या दस्तावेज़ से निकाला नहीं जा सका।",
		ErrOCRUnavailable:      "इस सर्वर पर पाठ पहचान (OCR) उपलब्ध नहीं है।",
		ErrUnsupportedFormat:   "यह फ़ाइल प्रारूप समर्थित नहीं है। PDF, DOCX, HTML, टेक्स्ट या चित्र फ़ाइल अपलोड करें।",
		ErrUnreadableDocument:  "फ़ाइल पढ़ी नहीं जा सकी। यह क्षतिग्रस्त या पासवर्ड से सुरक्षित हो सकती है; इसे फिर से निर्यात करके देखें।",
		ErrFileTooLarge:        "अपलोड की गई फ़ाइल बहुत बड़ी है।",
		ErrGeneration:          "AI सेवा उत्तर तैयार नहीं कर सकी। कृपया पुनः प्रयास करें।",
		ErrDatabaseUnavailable: "डेटाबेस उपलब्ध नहीं है। चैट इतिहास अक्षम है।",
		ErrInternal:            "कुछ गलत हो गया। कृपया पुनः प्रयास करें।",
		ErrEnqueue:             "अनुरोध कतार में नहीं जोड़ा जा सका। कृपया पुनः प्रयास करें।",
		ErrNotFound:            "नहीं मिला।",
		ErrMethodNotAllowed:    "यह विधि अनुमत नहीं है।",
	},
	Bengali: {
		AppTitle:            "আইনি মামলার ফলাফল পূর্বাভাসক",
		AppCaption:          "সম্ভাব্য মামলার ফলাফল জানুন এবং সহজ ভাষায় আইনি নির্দেশনা পান",
		Welcome:             "স্বাগতম! পূর্বাভাসিত ফলাফল ও ব্যাখ্যার জন্য অনুগ্রহ করে আপনার মামলার মূল তথ্যগুলি লিখুন।",
		InputPlaceholder:    "মামলার তথ্য এখানে লিখুন...",
		QuestionPlaceholder: "একটি আইনি প্রশ্ন জিজ্ঞাসা করুন...",
		Analyzing:           "মামলার তথ্য বিশ্লেষণ করা হচ্ছে...",
		PredictedOutcome:    "পূর্বাভাসিত ফলাফল",
		ModelExplanation:    "মডেলের ব্যাখ্যা",
		Confidence:          "আস্থা",
		LabelAppealAllowed:  "আপিল মঞ্জুর",
		LabelAppealDismiss:  "আপিল খারিজ",
		NewChat:             "নতুন চ্যাট",
		Login:               "লগ ইন",
		Register:            "নিবন্ধন",
		Logout:              "লগ আউট",
		Language:            "ভাষা",
		Disclaimer:          "দাবিত্যাগ: এই তথ্য কেবল সাধারণ নির্দেশনার জন্য এবং এটিকে আইনি পরামর্শ হিসেবে গণ্য করা উচিত নয়। আপনার মামলার জন্য একজন যোগ্য আইনজীবীর পরামর্শ নিন।",

		SectionFacts:         "তথ্যগত পটভূমি",
		SectionAnalysis:      "আইনি বিশ্লেষণ",
		SectionConclusion:    "উপসংহার",
		SectionUnderstanding: "আপনার পরিস্থিতি বোঝা",
		SectionSteps:         "আপনি যে পদক্ষেপ নিতে পারেন",
		SectionLaws:          "প্রাসঙ্গিক আইন",
		SectionContacts:      "সহায়ক যোগাযোগ",

		ErrUnauthorized:       "চালিয়ে যেতে অনুগ্রহ করে লগ ইন করুন।",
		ErrInvalidCredentials: "ভুল ব্যবহারকারীর নাম বা পাসওয়ার্ড।",
		ErrDuplicateUser:      "এই ব্যবহারকারীর নাম ইতিমধ্যে নেওয়া হয়েছে।",
		ErrModelNotLoaded:     "পূর্বাভাস মডেল লোড করা নেই। পূর্বাভাস বন্ধ আছে।",
		ErrEmptyCaseText:      "মামলার কোনো লেখা দেওয়া হয়নি বা নথি থেকে বের করা যায়নি।",
		ErrGeneration:         "AI পরিষেবা উত্তর তৈরি করতে পারেনি। অনুগ্রহ করে আবার চেষ্টা করুন।",
		ErrInternal:           "কিছু ভুল হয়েছে। অনুগ্রহ করে আবার চেষ্টা করুন।",
	},
	Tamil: {
		AppTitle:            "சட்ட வழக்கு முடிவு முன்கணிப்பான்",
		AppCaption:          "வழக்கின் சாத்தியமான முடிவை அறிந்து, எளிய மொழியில் சட்ட வழிகாட்டுதலைப் பெறுங்கள்",
		Welcome:             "வரவேற்கிறோம்! முன்கணிக்கப்பட்ட முடிவு மற்றும் விளக்கத்திற்கு உங்கள் வழக்கின் முக்கிய உண்மைகளை விவரிக்கவும்.",
		InputPlaceholder:    "வழக்கின் உண்மைகளை இங்கே உள்ளிடவும்...",
		QuestionPlaceholder: "ஒரு சட்டக் கேள்வியைக் கேளுங்கள்...",
		Analyzing:           "வழக்கு உண்மைகள் பகுப்பாய்வு செய்யப்படுகின்றன...",
		PredictedOutcome:    "முன்கணிக்கப்பட்ட முடிவு",
		ModelExplanation:    "மாதிரியின் விளக்கம்",
		Confidence:          "நம்பகத்தன்மை",
		LabelAppealAllowed:  "மேல்முறையீடு ஏற்கப்பட்டது",
		LabelAppealDismiss:  "மேல்முறையீடு தள்ளுபடி செய்யப்பட்டது",
		NewChat:             "புதிய உரையாடல்",
		Login:               "உள்நுழை",
		Register:            "பதிவு செய்",
		Logout:              "வெளியேறு",
		Language:            "மொழி",
		Disclaimer:          "பொறுப்புத் துறப்பு: இந்தத் தகவல் பொதுவான வழிகாட்டுதலுக்காக மட்டுமே; இதைச் சட்ட ஆலோசனையாகக் கருதக் கூடாது. உங்கள் வழக்கிற்குத் தகுதியான வழக்கறிஞரை அணுகவும்.",

		SectionFacts:         "உண்மை பின்னணி",
		SectionAnalysis:      "சட்டப் பகுப்பாய்வு",
		SectionConclusion:    "முடிவுரை",
		SectionUnderstanding: "உங்கள் நிலைமையைப் புரிந்துகொள்ளுதல்",
		SectionSteps:         "நீங்கள் எடுக்கக்கூடிய நடவடிக்கைகள்",
		SectionLaws:          "தொடர்புடைய சட்டங்கள்",
		SectionContacts:      "உதவிக்கான தொடர்புகள்",

		ErrUnauthorized:       "தொடர உள்நுழையவும்.",
		ErrInvalidCredentials: "தவறான பயனர்பெயர் அல்லது கடவுச்சொல்.",
		ErrDuplicateUser:      "இந்தப் பயனர்பெயர் ஏற்கனவே பயன்பாட்டில் உள்ளது.",
		ErrModelNotLoaded:     "முன்கணிப்பு மாதிரி ஏற்றப்படவில்லை. முன்கணிப்புகள் முடக்கப்பட்டுள்ளன.",
		ErrEmptyCaseText:      "வழக்கு உரை வழங்கப்படவில்லை அல்லது ஆவணத்திலிருந்து பிரித்தெடுக்க முடியவில்லை.",
		ErrGeneration:         "AI சேவையால் பதிலை உருவாக்க முடியவில்லை. மீண்டும் முயற்சிக்கவும்.",
		ErrInternal:           "ஏதோ தவறு நடந்தது. மீண்டும் முயற்சிக்கவும்.",
	},
}

// T looks up key for lang. A key missing for lang falls back to the English
// entry; a key missing everywhere returns the key itself so callers never
// render an empty string.
func T(lang Lang, key Key) string {
	if s, ok := tables[lang][key]; ok && s != "" {
		return s
	}
	if s, ok := tables[Default][key]; ok && s != "" {
		return s
	}
	return string(key)
}

// Has reports whether lang defines key itself, without fallback.
func Has(lang Lang, key Key) bool {
	s, ok := tables[lang][key]
	return ok && s != ""
}

// Keys lists every key of the reference (English) table.
func Keys() []Key {
	out := make([]Key, 0, len(tables[Default]))
	for k := range tables[Default] {
		out = append(out, k)
	}
	return out
}

// Strings returns the full table for lang with fallbacks applied.
func Strings(lang Lang) map[Key]string {
	out := make(map[Key]string, len(tables[Default]))
	for k := range tables[Default] {
		out[k] = T(lang, k)
	}
	return out
}

// Missing lists reference keys lang does not translate itself.
func Missing(lang Lang) []Key {
	var out []Key
	for k := range tables[Default] {
		if !Has(lang, k) {
			out = append(out, k)
		}
	}
	return out
}
