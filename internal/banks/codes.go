package banks

// entries mirrors the bank list published by the payment provider.
// Names must match the display names counterparties declare on their
// payment terms, character for character.
var entries = []Entry{
	{Name: "Access Bank", Code: "000014"},
	{Name: "Access Bank (Diamond)", Code: "000005"},
	{Name: "ALAT by WEMA", Code: "000017"},
	{Name: "Citibank Nigeria", Code: "000009"},
	{Name: "Ecobank Nigeria", Code: "000010"},
	{Name: "Fidelity Bank", Code: "000007"},
	{Name: "First Bank of Nigeria", Code: "000016"},
	{Name: "First City Monument Bank", Code: "000003"},
	{Name: "Globus Bank", Code: "000027"},
	{Name: "Guaranty Trust Bank", Code: "000013"},
	{Name: "Heritage Bank", Code: "000020"},
	{Name: "Jaiz Bank", Code: "000006"},
	{Name: "Keystone Bank", Code: "000002"},
	{Name: "Kuda Bank", Code: "090267"},
	{Name: "Moniepoint MFB", Code: "090405"},
	{Name: "OPay", Code: "100004"},
	{Name: "PalmPay", Code: "100033"},
	{Name: "Parallex Bank", Code: "000030"},
	{Name: "Polaris Bank", Code: "000008"},
	{Name: "Providus Bank", Code: "000023"},
	{Name: "Stanbic IBTC Bank", Code: "000012"},
	{Name: "Standard Chartered Bank", Code: "000021"},
	{Name: "Sterling Bank", Code: "000001"},
	{Name: "SunTrust Bank", Code: "000022"},
	{Name: "Titan Trust Bank", Code: "000025"},
	{Name: "Union Bank of Nigeria", Code: "000018"},
	{Name: "United Bank For Africa", Code: "000004"},
	{Name: "Unity Bank", Code: "000011"},
	{Name: "VFD Microfinance Bank", Code: "090110"},
	{Name: "Wema Bank", Code: "000017"},
	{Name: "Zenith Bank", Code: "000015"},
}
