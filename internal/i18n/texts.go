package i18n

// builtinMessages carries the shipped texts. Placeholders are fmt verbs; the
// argument order per key is part of the contract with the engine:
//
//	welcome:              brand
//	package_card:         name, price tag, details, terms
//	selected_package:     name
//	thank_you:            brand
var builtinMessages = map[Key]map[string]string{
	KeyWelcome: {
		"en": "Welcome to %s!\n\nHow can we help you today?",
		"ar": "أهلاً بك في %s!\n\nكيف يمكننا مساعدتك اليوم؟",
	},
	KeyHelp: {
		"en": "Send any message to see the menu, or use /start.",
		"ar": "أرسل أي رسالة لعرض القائمة، أو استخدم /start.",
	},
	KeyMoreInfo: {
		"en": "📥 How to Watch with 000 Player\n\n" +
			"1) Install 000 Player on your device:\n" +
			"   • iPhone/iPad: App Store\n" +
			"   • Android/TV: Google Play\n" +
			"   • Firestick/Android TV via Downloader: http://aftv.news/6913771\n" +
			"   • Web Player (PC/Laptop, PlayStation, Xbox): https://my.splayer.in\n\n" +
			"2) Open the app and enter the Server Number in Host/DNS field: 7765\n" +
			"3) After payment & activation, we will send your login details.",
		"ar": "📥 طريقة المشاهدة عبر تطبيق 000 Player\n\n" +
			"1) ثبّت تطبيق 000 Player على جهازك:\n" +
			"   • آيفون/آيباد: App Store\n" +
			"   • أندرويد/تلفزيون: Google Play\n" +
			"   • فايرستيك عبر Downloader: http://aftv.news/6913771\n" +
			"   • مشغّل الويب: https://my.splayer.in\n\n" +
			"2) افتح التطبيق وأدخل رقم الخادم في حقل Host/DNS: ‏7765\n" +
			"3) بعد الدفع والتفعيل سنرسل لك بيانات الدخول.",
	},
	KeyChooseLanguage: {
		"en": "Please choose your language / الرجاء اختيار اللغة",
		"ar": "Please choose your language / الرجاء اختيار اللغة",
	},
	KeyPickPackage: {
		"en": "Please choose a package:",
		"ar": "الرجاء اختيار الباقة:",
	},
	KeyPackageNotFound: {
		"en": "Package not found.",
		"ar": "الباقة غير موجودة.",
	},
	KeyTerms: {
		"en": "✅ Terms & Notes\n\n" +
			"• Activation after payment confirmation.\n" +
			"• One account per device limit unless the package states otherwise.\n" +
			"• Using on multiple devices simultaneously may cause buffering or stop working.\n" +
			"• No refunds after activation.\n\n" +
			"Do you agree to proceed?",
		"ar": "✅ الشروط والملاحظات\n\n" +
			"• التفعيل بعد تأكيد الدفع.\n" +
			"• حساب واحد لكل جهاز ما لم تنص الباقة على خلاف ذلك.\n" +
			"• الاستخدام على عدة أجهزة في نفس الوقت قد يسبب تقطيعاً أو توقفاً.\n" +
			"• لا استرداد بعد التفعيل.\n\n" +
			"هل توافق على المتابعة؟",
	},
	KeyPackageCard: {
		"en": "🛍️ %s\n💰 Price: %s\n%s\n%s",
		"ar": "🛍️ %s\n💰 السعر: %s\n%s\n%s",
	},
	KeySelectedPackage: {
		"en": "You selected %s.",
		"ar": "لقد اخترت %s.",
	},
	KeyPaymentInstructions: {
		"en": "💳 Payment\n\nTap the button below to pay. After completing payment, come back and press 'I Paid'.",
		"ar": "💳 الدفع\n\nاضغط الزر أدناه للدفع. بعد إتمام الدفع عُد واضغط 'لقد دفعت'.",
	},
	KeyAskPhone: {
		"en": "Please send your phone number (or share your contact) so we can finalize activation.",
		"ar": "الرجاء إرسال رقم هاتفك (أو مشاركة جهة الاتصال) لإتمام التفعيل.",
	},
	KeyPhoneInvalid: {
		"en": "That doesn't look like a valid phone number. Please send it with the country code, e.g. +9715xxxxxxxx.",
		"ar": "يبدو أن رقم الهاتف غير صحيح. الرجاء إرساله مع رمز الدولة، مثال: ‏+9715xxxxxxxx.",
	},
	KeyAskProof: {
		"en": "Please send your payment reference or a screenshot of the receipt.",
		"ar": "الرجاء إرسال مرجع الدفع أو لقطة شاشة للإيصال.",
	},
	KeyThankYou: {
		"en": "🎉 Thank you for choosing %s!\nWe'll message you shortly to finalize your activation.",
		"ar": "🎉 شكراً لاختيارك %s!\nسنراسلك قريباً لإتمام التفعيل.",
	},
	KeyUnknownAction: {
		"en": "Sorry, that action is no longer available. Back to the menu:",
		"ar": "عذراً، هذا الإجراء لم يعد متاحاً. العودة إلى القائمة:",
	},

	KeyBtnMoreInfo: {
		"en": "📋 More Info",
		"ar": "📋 معلومات أكثر",
	},
	KeyBtnSubscribe: {
		"en": "💳 Subscribe",
		"ar": "💳 اشترك",
	},
	KeyBtnAgree: {
		"en": "✅ I Agree",
		"ar": "✅ أوافق",
	},
	KeyBtnPayNow: {
		"en": "🔗 Pay Now",
		"ar": "🔗 ادفع الآن",
	},
	KeyBtnPaid: {
		"en": "✅ I Paid",
		"ar": "✅ لقد دفعت",
	},
	KeyBtnBack: {
		"en": "⬅️ Back",
		"ar": "⬅️ رجوع",
	},
	KeyBtnBackHome: {
		"en": "🏠 Main Menu",
		"ar": "🏠 القائمة الرئيسية",
	},
}
