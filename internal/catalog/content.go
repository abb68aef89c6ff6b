package catalog

// RelaxContent is the relaxation half of the audio library.
var RelaxContent = []AudioTrack{
	{ID: "r1", Title: "Deep Breathing", Category: CategoryRelax, Duration: "5:00", IsPremium: false, ArabicLabel: "تنفس عميق", Icon: "Wind"},
	{ID: "r2", Title: "Deep Release", Category: CategoryRelax, Duration: "19:57", IsPremium: false, ArabicLabel: "تحرر عميق", Icon: "User"},
	{ID: "r3", Title: "Dissolve Anxiety Video", Category: CategoryRelax, Duration: "12:00", IsPremium: false, ArabicLabel: "فيديو تبديد القلق", Icon: "Sun"},
	{ID: "r4", Title: "Acceptance", Category: CategoryRelax, Duration: "8:45", IsPremium: true, ArabicLabel: "التقبل", Icon: "Heart"},
	{ID: "r5", Title: "Meditate", Category: CategoryRelax, Duration: "15:00", IsPremium: true, ArabicLabel: "تأمل", Icon: "Mountain"},
	{ID: "r6", Title: "Nature Sounds", Category: CategoryRelax, Duration: "30:00", IsPremium: false, ArabicLabel: "أصوات الطبيعة", Icon: "Leaf"},
	{ID: "r7", Title: "Sleep", Category: CategoryRelax, Duration: "45:00", IsPremium: true, ArabicLabel: "النوم", Icon: "Moon"},
	{ID: "r8", Title: "Motivate Me", Category: CategoryRelax, Duration: "6:30", IsPremium: false, ArabicLabel: "حفزني", Icon: "Zap"},
	{ID: "r9", Title: "Gratitude", Category: CategoryRelax, Duration: "10:00", IsPremium: false, ArabicLabel: "الامتنان", Icon: "HeartHandshake"},
}

// ChallengeContent is the exposure-challenge half of the audio library.
var ChallengeContent = []AudioTrack{
	{ID: "c1", Title: "Health Anxiety", Category: CategoryChallenge, Duration: "7:00", IsPremium: false, ArabicLabel: "قلق الصحة", Icon: "Stethoscope"},
	{ID: "c2", Title: "Social Anxiety", Category: CategoryChallenge, Duration: "10:00", IsPremium: true, ArabicLabel: "القلق الاجتماعي", Icon: "Users"},
	{ID: "c3", Title: "Intrusive Thoughts", Category: CategoryChallenge, Duration: "8:30", IsPremium: true, ArabicLabel: "أفكار دخيلة", Icon: "CloudRain"},
	{ID: "c4", Title: "Feeling Trapped", Category: CategoryChallenge, Duration: "9:15", IsPremium: true, ArabicLabel: "الشعور بالحصار", Icon: "Home"},
	{ID: "c5", Title: "Safety Crutches", Category: CategoryChallenge, Duration: "11:00", IsPremium: true, ArabicLabel: "عكازات الأمان", Icon: "Accessibility"},
	{ID: "c6", Title: "Bodily Sensations", Category: CategoryChallenge, Duration: "12:45", IsPremium: true, ArabicLabel: "أحاسيس جسدية", Icon: "Heart"},
	{ID: "c7", Title: "Overcoming Setbacks", Category: CategoryChallenge, Duration: "14:20", IsPremium: true, ArabicLabel: "تجاوز الانتكاسات", Icon: "ArrowUpCircle"},
	{ID: "c8", Title: "Anticipatory Anxiety", Category: CategoryChallenge, Duration: "9:50", IsPremium: true, ArabicLabel: "القلق الاستباقي", Icon: "Clock"},
	{ID: "c9", Title: "Driving Anxiety", Category: CategoryChallenge, Duration: "13:10", IsPremium: true, ArabicLabel: "قلق القيادة", Icon: "Car"},
}

// DareSteps is the four-phase guided response to acute anxiety:
// Defuse, Allow, Run-toward, Engage.
var DareSteps = []DareStep{
	{
		ID:          "defuse",
		Title:       "نزع الفتيل (Defuse)",
		Instruction: "لا تقلق، هذا مجرد أدرينالين. قل لنفسك: \"ليكن، أنا مستعد لهذا الشعور\".",
		AudioText:   "لا تقلق، ما تشعر به هو مجرد استجابة جسدية طبيعية. إنه الأدرينالين يتحدث.",
	},
	{
		ID:          "allow",
		Title:       "التقبل (Allow)",
		Instruction: "اسمح للرجفة أو الضيق، لا تقاومها. تقبّل وجود القلق كضيف عابر.",
		AudioText:   "اسمح لهذه الأحاسيس بالبقاء. لا تحاول طردها. كلما سمحت لها، كلما فقدت قوتها.",
	},
	{
		ID:          "run_toward",
		Title:       "التحدي (Run Toward)",
		Instruction: "اطلب المزيد! قل لهلوعك: \"هل هذا كل ما لديك؟ أعطني المزيد!\"",
		AudioText:   "اركض نحو القلق. اطلب منه المزيد. قل له: أرني أسوأ ما عندك. أنت أقوى منه.",
	},
	{
		ID:          "engage",
		Title:       "الانخراط (Engage)",
		Instruction: "الآن، عد للتركيز في عملك أو ما كنت تفعله بوعي كامل.",
		AudioText:   "الآن، عد إلى لحظتك الحالية. ما الذي تفعله الآن؟ ركز حواسك فيه بالكامل.",
	},
}

// DailyChallenges are the exposure exercises rotated on the home screen.
var DailyChallenges = []DailyChallenge{
	{ID: "d1", Title: "تحدي المواجهة", Description: "قم بفعل شيء واحد يجعلك غير مرتاح اليوم.", Icon: "🎯"},
	{ID: "d2", Title: "تحدي القبول", Description: "لاحظ دقات قلبك اليوم دون إصدار أحكام.", Icon: "💓"},
}
